package service

const DefaultLang = "ko"

const (
	MsgLoginFailed             = "login_failed"
	MsgUnregisteredCredentials = "unregistered_credentials"
	MsgUnknownError            = "unknown_error"
)

// DefaultMessages are used when no message catalog overrides them.
var DefaultMessages = map[string]map[string]string{
	"ko": {
		MsgLoginFailed:             "로그인에 실패했습니다.",
		MsgUnregisteredCredentials: "가입되지 않은 id,pw 입니다",
		MsgUnknownError:            "알 수 없는 오류가 발생했습니다.",
	},
	"en": {
		MsgLoginFailed:             "Login failed.",
		MsgUnregisteredCredentials: "Unregistered id or password.",
		MsgUnknownError:            "An unknown error occurred.",
	},
}

func defaultText(lang, id string) string {
	if msg, ok := DefaultMessages[lang][id]; ok {
		return msg
	}
	if msg, ok := DefaultMessages[DefaultLang][id]; ok {
		return msg
	}
	return id
}
