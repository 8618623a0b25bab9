package models

// Guide представляет информационный гайд, принадлежащий блоку профкома
type Guide struct {
	GuideID      uint    `gorm:"column:guide_id;primaryKey;autoIncrement" json:"guide_id"`
	Title        string  `gorm:"column:title;not null" json:"title"`
	OwnerBlock   string  `gorm:"column:owner_block;not null" json:"owner_block"`
	Text         string  `gorm:"column:text;type:text;not null" json:"text"`
	OriginalLink *string `gorm:"column:original_link" json:"original_link"`
}

// TableName устанавливает имя таблицы для модели Guide
func (Guide) TableName() string {
	return "guides"
}
