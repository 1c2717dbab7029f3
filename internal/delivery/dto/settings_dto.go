package dto

// NotificationSettingsPayload is used both as the PUT request body and the
// GET response: channel (email/push/sms) crossed with notification kind.
type NotificationSettingsPayload struct {
	EmailAppointment bool `json:"email_appointment"`
	EmailMessage     bool `json:"email_message"`
	EmailReminder    bool `json:"email_reminder"`
	EmailSystem      bool `json:"email_system"`

	PushAppointment bool `json:"push_appointment"`
	PushMessage     bool `json:"push_message"`
	PushReminder    bool `json:"push_reminder"`
	PushSystem      bool `json:"push_system"`

	SMSAppointment bool `json:"sms_appointment"`
	SMSMessage     bool `json:"sms_message"`
	SMSReminder    bool `json:"sms_reminder"`
	SMSSystem      bool `json:"sms_system"`
}
