package dto

type MessageOutput struct {
	Body struct {
		Message string `json:"message" doc:"Human readable confirmation"`
	}
}

func Message(msg string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Message = msg
	return out
}

// IDInput addresses a single resource by its numeric id.
type IDInput struct {
	ID uint `path:"id" doc:"Resource id"`
}

type HealthOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}
