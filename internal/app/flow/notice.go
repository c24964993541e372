package flow

const (
	IconError   = "error"
	IconSuccess = "success"
)

// Notice is a dialog shown to the user after an action.
type Notice struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

func errorNotice(title, text string) *Notice {
	return &Notice{Icon: IconError, Title: title, Text: text}
}

func successNotice(title, text string) *Notice {
	return &Notice{Icon: IconSuccess, Title: title, Text: text}
}
