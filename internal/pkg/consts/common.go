package consts

const (
	// AvatarPrefix 头像在存储桶中的对象名前缀
	AvatarPrefix = "uploads/profile/"

	// AvatarMaxSize 头像体积上限 1 MiB
	AvatarMaxSize = 1 << 20

	// MimePrefixImage 图片MIME前缀
	MimePrefixImage = "image"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	// MinAge 注册资料的最小年龄
	MinAge = 13

	// DefaultPageSize 列表接口默认分页大小
	DefaultPageSize = 40
)
