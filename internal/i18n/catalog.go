package i18n

import "github.com/SscSPs/parkmate_app/internal/apperrors"

// MessageKey names a user-facing message.
type MessageKey string

const (
	MsgFillAllFields       MessageKey = "fillAllFields"
	MsgInvalidEmail        MessageKey = "invalidEmail"
	MsgUserNotFound        MessageKey = "userNotFound"
	MsgWrongPassword       MessageKey = "wrongPassword"
	MsgLoginFailed         MessageKey = "loginFailed"
	MsgEmailInUse          MessageKey = "emailInUse"
	MsgWeakPassword        MessageKey = "weakPassword"
	MsgPasswordsMismatch   MessageKey = "passwordsDoNotMatch"
	MsgInvalidResetToken   MessageKey = "invalidResetToken"
	MsgInvalidGoogleToken  MessageKey = "invalidGoogleToken"
	MsgPasswordResetSent   MessageKey = "passwordResetSent"
	MsgPasswordChanged     MessageKey = "passwordChanged"
	MsgInvalidPin          MessageKey = "invalidPin"
	MsgPinNotFound         MessageKey = "pinNotFound"
	MsgUsePinOnExit        MessageKey = "usePinOnExit"
	MsgStatusActive        MessageKey = "statusActive"
	MsgStatusCompleted     MessageKey = "statusCompleted"
	MsgConfirmRequired     MessageKey = "confirmRequired"
	MsgLogsDeleted         MessageKey = "logsDeleted"
	MsgUnknownPreference   MessageKey = "unknownPreference"
	MsgInvalidRequest      MessageKey = "invalidRequest"
	MsgUnauthorized        MessageKey = "unauthorized"
	MsgNotFound            MessageKey = "notFound"
	MsgConflict            MessageKey = "conflict"
	MsgStoreUnavailable    MessageKey = "storeUnavailable"
	MsgInternalError       MessageKey = "internalError"
	MsgTooManyRequests     MessageKey = "tooManyRequests"
	MsgSessionExpired      MessageKey = "sessionExpired"
	MsgGoogleNotConfigured MessageKey = "googleNotConfigured"
)

var catalog = map[string]map[MessageKey]string{
	"en": {
		MsgFillAllFields:       "Please fill in all fields.",
		MsgInvalidEmail:        "Invalid email address.",
		MsgUserNotFound:        "User not found. Please register.",
		MsgWrongPassword:       "Wrong password. Please try again.",
		MsgLoginFailed:         "Login failed. Please check your information.",
		MsgEmailInUse:          "This email address is already registered.",
		MsgWeakPassword:        "Password must be at least 6 characters.",
		MsgPasswordsMismatch:   "Passwords do not match.",
		MsgInvalidResetToken:   "This reset link is invalid or has expired.",
		MsgInvalidGoogleToken:  "Google sign-in failed. Please try again.",
		MsgPasswordResetSent:   "A password reset link has been sent to your email.",
		MsgPasswordChanged:     "Your password has been changed.",
		MsgInvalidPin:          "Invalid PIN",
		MsgPinNotFound:         "No entry found with this PIN code.",
		MsgUsePinOnExit:        "Please use this code when exiting.",
		MsgStatusActive:        "Active",
		MsgStatusCompleted:     "Completed",
		MsgConfirmRequired:     "Deleting all records is irreversible. Repeat the request with confirm=true.",
		MsgLogsDeleted:         "All records were deleted.",
		MsgUnknownPreference:   "Unknown preference or value.",
		MsgInvalidRequest:      "The request is invalid.",
		MsgUnauthorized:        "Please sign in to continue.",
		MsgNotFound:            "The requested resource was not found.",
		MsgConflict:            "The resource already exists.",
		MsgStoreUnavailable:    "The service is temporarily unavailable. Please try again.",
		MsgInternalError:       "Something went wrong. Please try again.",
		MsgTooManyRequests:     "Too many requests. Please try again later.",
		MsgSessionExpired:      "Your session has expired. Please sign in again.",
		MsgGoogleNotConfigured: "Google sign-in is not available.",
	},
	"tr": {
		MsgFillAllFields:       "Lütfen tüm alanları doldurun.",
		MsgInvalidEmail:        "Geçersiz e-posta adresi girdiniz.",
		MsgUserNotFound:        "Kullanıcı bulunamadı. Lütfen kayıt olun.",
		MsgWrongPassword:       "Şifre yanlış. Lütfen tekrar deneyin.",
		MsgLoginFailed:         "Giriş başarısız. Lütfen bilgilerinizi kontrol edin.",
		MsgEmailInUse:          "Bu e-posta adresi zaten kayıtlı.",
		MsgWeakPassword:        "Şifre en az 6 karakter olmalıdır.",
		MsgPasswordsMismatch:   "Şifreler eşleşmiyor.",
		MsgInvalidResetToken:   "Bu sıfırlama bağlantısı geçersiz veya süresi dolmuş.",
		MsgInvalidGoogleToken:  "Google ile giriş başarısız. Lütfen tekrar deneyin.",
		MsgPasswordResetSent:   "Şifre sıfırlama bağlantısı e-posta adresinize gönderildi.",
		MsgPasswordChanged:     "Şifreniz değiştirildi.",
		MsgInvalidPin:          "Hatalı PIN",
		MsgPinNotFound:         "Bu PIN koduyla giriş bulunamadı.",
		MsgUsePinOnExit:        "Lütfen çıkışta bu kodu kullanın.",
		MsgStatusActive:        "Aktif",
		MsgStatusCompleted:     "Tamamlandı",
		MsgConfirmRequired:     "Tüm kayıtları silmek geri alınamaz. İsteği confirm=true ile tekrarlayın.",
		MsgLogsDeleted:         "Tüm kayıtlar silindi.",
		MsgUnknownPreference:   "Bilinmeyen ayar veya değer.",
		MsgInvalidRequest:      "İstek geçersiz.",
		MsgUnauthorized:        "Devam etmek için lütfen giriş yapın.",
		MsgNotFound:            "İstenen kaynak bulunamadı.",
		MsgConflict:            "Kaynak zaten mevcut.",
		MsgStoreUnavailable:    "Hizmet geçici olarak kullanılamıyor. Lütfen tekrar deneyin.",
		MsgInternalError:       "Bir şeyler ters gitti. Lütfen tekrar deneyin.",
		MsgTooManyRequests:     "Çok fazla istek. Lütfen daha sonra tekrar deneyin.",
		MsgSessionExpired:      "Oturumunuzun süresi doldu. Lütfen tekrar giriş yapın.",
		MsgGoogleNotConfigured: "Google ile giriş kullanılamıyor.",
	},
}

var authMessages = map[apperrors.AuthCode]MessageKey{
	apperrors.AuthMissingFields:      MsgFillAllFields,
	apperrors.AuthInvalidEmail:       MsgInvalidEmail,
	apperrors.AuthUserNotFound:       MsgUserNotFound,
	apperrors.AuthWrongPassword:      MsgWrongPassword,
	apperrors.AuthLoginFailed:        MsgLoginFailed,
	apperrors.AuthEmailAlreadyInUse:  MsgEmailInUse,
	apperrors.AuthWeakPassword:       MsgWeakPassword,
	apperrors.AuthPasswordsMismatch:  MsgPasswordsMismatch,
	apperrors.AuthInvalidResetToken:  MsgInvalidResetToken,
	apperrors.AuthInvalidGoogleToken: MsgInvalidGoogleToken,
}

// KeyForAuthCode maps an auth error code to its message. Unknown codes map
// to the generic login failure.
func KeyForAuthCode(code apperrors.AuthCode) MessageKey {
	if key, ok := authMessages[code]; ok {
		return key
	}
	return MsgLoginFailed
}
