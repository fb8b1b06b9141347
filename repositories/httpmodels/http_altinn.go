package httpmodels

type HTTPAltinnCorrespondence struct {
	Reference         string `json:"reference"`
	Virksomhetsnummer string `json:"virksomhetsnummer"`
	Title             string `json:"title"`
	Summary           string `json:"summary"`
	Attachment        []byte `json:"attachment"`
	AttachmentName    string `json:"attachmentName"`
}
