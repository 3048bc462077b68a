package errcode

type Code string

const (
	BadRequest Code = "BAD_REQUEST"
	NotFound   Code = "NOT_FOUND"

	ProviderUnavailable Code = "PROVIDER_NOT_CONFIGURED"
	ProviderFailed      Code = "PROVIDER_ERROR"
	ProviderBadData     Code = "PROVIDER_BAD_DATA"

	TooManyRequests Code = "TOO_MANY_REQUESTS"
	Internal        Code = "INTERNAL_ERROR"
)
