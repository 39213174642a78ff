package core

// DomainError 是领域层的统一错误类型。
//
// 错误分类约定（与链路语义对应）：
//   - 过滤决策（非手机、配件、价格非法）不是错误，静默丢弃；
//   - 数据缺陷（价格解析失败、品牌缺失、事件缺用户）就地取安全默认值；
//   - 结构性不可用（未知用户、空目录、用户数不足）走兜底，不向上传播；
//   - 只有基础设施故障（存储、远端特征服务）才以 error 形式出现。
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "NOT_SUPPORTED"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "feast"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{Module: module, Code: code, Message: message}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED" // 操作不支持
	ErrorCodeUnavailable  = "UNAVAILABLE"   // 服务不可用
	ErrorCodeInvalidInput = "INVALID_INPUT" // 输入无效
)

// 模块名称常量
const (
	ModuleStore   = "store"
	ModuleCatalog = "catalog"
	ModuleProfile = "profile"
	ModuleFeast   = "feast"
	ModuleEngine  = "engine"
)

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED。
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}

// IsUnavailable 检查错误是否为 UNAVAILABLE。
func IsUnavailable(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeUnavailable
	}
	return false
}
