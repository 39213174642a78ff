package core

import (
	"errors"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		notSupported bool
		unavailable  bool
	}{
		{"store not found sentinel", ErrStoreNotFound, true, false, false},
		{"store not supported sentinel", ErrStoreNotSupported, false, true, false},
		{"feast unavailable", NewDomainError(ModuleFeast, ErrorCodeUnavailable, "feast down"), false, false, true},
		{"invalid input matches nothing", NewDomainError(ModuleCatalog, ErrorCodeInvalidInput, "bad rows"), false, false, false},
		{"plain error matches nothing", errors.New("boom"), false, false, false},
		{"nil matches nothing", nil, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tt.notFound)
			}
			if got := IsNotSupported(tt.err); got != tt.notSupported {
				t.Errorf("IsNotSupported = %v, want %v", got, tt.notSupported)
			}
			if got := IsUnavailable(tt.err); got != tt.unavailable {
				t.Errorf("IsUnavailable = %v, want %v", got, tt.unavailable)
			}
		})
	}
}

func TestGetDomainError(t *testing.T) {
	domain := NewDomainError(ModuleStore, ErrorCodeNotFound, "missing")
	if got := GetDomainError(domain); got != domain {
		t.Errorf("GetDomainError = %v, want identity", got)
	}
	if got := GetDomainError(errors.New("boom")); got != nil {
		t.Errorf("plain error should yield nil, got %v", got)
	}
	if got := GetDomainError(nil); got != nil {
		t.Errorf("nil should yield nil, got %v", got)
	}
}

func TestIsStoreNotFoundScopedToStoreModule(t *testing.T) {
	if !IsStoreNotFound(ErrStoreNotFound) {
		t.Error("store sentinel must match")
	}
	// 其他模块的 NOT_FOUND 不算存储缺 key
	other := NewDomainError(ModuleFeast, ErrorCodeNotFound, "no features")
	if IsStoreNotFound(other) {
		t.Error("non-store NOT_FOUND must not match")
	}
	if !IsNotFound(other) {
		t.Error("generic IsNotFound must match any module")
	}
}
