package models

// User представляет учетную запись участника профкома
type User struct {
	UserID      uint   `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	UserName    string `gorm:"column:user_name;not null;index" json:"user_name"`
	KKRScore    int    `gorm:"column:kkr_score;not null" json:"kkr_score"`
	GroupNumber string `gorm:"column:group_number;not null" json:"group_number"`
	Blocks      string `gorm:"column:blocks;not null" json:"blocks"`
	Banned      bool   `gorm:"column:banned;not null" json:"banned"`
	SuperUser   bool   `gorm:"column:super_user;not null" json:"super_user"`
	Admin       bool   `gorm:"column:admin;not null" json:"admin"`

	Contact *ContactInfo `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin сообщает, есть ли у пользователя права администратора (суперпользователь их включает)
func (u *User) IsAdmin() bool {
	return u.Admin || u.SuperUser
}

// IsSuperUser сообщает, является ли пользователь суперпользователем (председателем)
func (u *User) IsSuperUser() bool {
	return u.SuperUser
}

// ContactInfo содержит контактные данные участника, связанные с User отношением 1:1
type ContactInfo struct {
	UserID      uint   `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	FIO         string `gorm:"column:fio;not null" json:"fio"`
	KKRName     string `gorm:"column:kkr_name;not null" json:"kkr_name"`
	GroupNumber string `gorm:"column:group_number;not null" json:"group_number"`
	Location    string `gorm:"column:location;not null" json:"location"`
	Blocks      string `gorm:"column:blocks;not null" json:"blocks"`
	Phone       string `gorm:"column:phone;not null" json:"phone"`
	VK          string `gorm:"column:vk;not null" json:"vk"`
	TG          string `gorm:"column:tg;not null" json:"tg"`
	Email       string `gorm:"column:email;not null" json:"email"`
	Budget      bool   `gorm:"column:budget;not null" json:"budget"`
	InProfcom   bool   `gorm:"column:in_profcom;not null" json:"in_profcom"`
}

// TableName устанавливает имя таблицы для модели User
func (User) TableName() string {
	return "users"
}

// TableName устанавливает имя таблицы для модели ContactInfo
func (ContactInfo) TableName() string {
	return "contact_info"
}
