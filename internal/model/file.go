package model

type FileType string

const (
	FileProfilePhoto    FileType = "PROFILE_PHOTO"
	FileResume          FileType = "RESUME"
	FileCoverLetter     FileType = "COVER_LETTER"
	FileVideo           FileType = "VIDEO"
	FileLogo            FileType = "LOGO"
	FileAssessmentSheet FileType = "ASSESSMENT_SHEET"
)

// swagger:model File
type File struct {
	UUIDBase
	Name        string   `gorm:"size:255;not null" json:"name"`
	URL         string   `gorm:"size:512;not null;uniqueIndex" json:"url"`
	Key         string   `gorm:"size:512;not null" json:"key"`
	Type        FileType `gorm:"size:32" json:"type"`
	ContentType string   `gorm:"size:128" json:"contentType"`
	Size        int64    `json:"size"`
	OwnerID     string   `gorm:"index;type:varchar(36)" json:"ownerId,omitempty"`
}

func (File) TableName() string {
	return "files"
}
