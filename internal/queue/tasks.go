package queue

const (
	TypeContentExtract = "document:extract"
	TypeAssistantIndex = "assistant:index"
)

type ContentExtractPayload struct {
	DocumentID string `json:"document_id"`
	OrgID      string `json:"org_id"`
}

type AssistantIndexPayload struct {
	DocumentID string `json:"document_id"`
	OrgID      string `json:"org_id"`
}
