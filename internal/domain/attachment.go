package domain

type Attachment struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	Data        []byte `json:"-"`
}

func NewAttachment(fileName, contentType string, data []byte) *Attachment {
	return &Attachment{
		FileName:    fileName,
		ContentType: contentType,
		Size:        len(data),
		Data:        data,
	}
}
