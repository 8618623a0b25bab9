package models

// ContactInput представляет контактные данные из запроса на регистрацию.
// Все поля обязательны, но строки могут быть пустыми: required проверяет только наличие.
type ContactInput struct {
	FIO         *string `json:"fio" validate:"required"`
	KKRName     *string `json:"kkr_name" validate:"required"`
	GroupNumber *string `json:"group_number" validate:"required"`
	Location    *string `json:"location" validate:"required"`
	Blocks      *string `json:"blocks" validate:"required"`
	Phone       *string `json:"phone" validate:"required"`
	VK          *string `json:"vk" validate:"required"`
	TG          *string `json:"tg" validate:"required"`
	Email       *string `json:"email" validate:"required,email"`
	Budget      *bool   `json:"budget" validate:"required"`
	InProfcom   *bool   `json:"in_profcom" validate:"required"`
}

// UserInput представляет данные пользователя из запроса на регистрацию.
// Флаги прав необязательны и по умолчанию false.
type UserInput struct {
	UserName    *string `json:"user_name" validate:"required"`
	KKRScore    *int    `json:"kkr_score" validate:"required"`
	GroupNumber *string `json:"group_number" validate:"required"`
	Blocks      *string `json:"blocks" validate:"required"`
	Banned      bool    `json:"banned"`
	SuperUser   bool    `json:"super_user"`
	Admin       bool    `json:"admin"`
}

// RegisterRequest представляет запрос на регистрацию участника
type RegisterRequest struct {
	Contact ContactInput `json:"contact" validate:"required"`
	User    UserInput    `json:"user_in" validate:"required"`
}

// ToModels собирает строки User и ContactInfo с временным идентификатором 0
func (r *RegisterRequest) ToModels() (*ContactInfo, *User) {
	contact := &ContactInfo{
		FIO:         valueOf(r.Contact.FIO),
		KKRName:     valueOf(r.Contact.KKRName),
		GroupNumber: valueOf(r.Contact.GroupNumber),
		Location:    valueOf(r.Contact.Location),
		Blocks:      valueOf(r.Contact.Blocks),
		Phone:       valueOf(r.Contact.Phone),
		VK:          valueOf(r.Contact.VK),
		TG:          valueOf(r.Contact.TG),
		Email:       valueOf(r.Contact.Email),
		Budget:      valueOf(r.Contact.Budget),
		InProfcom:   valueOf(r.Contact.InProfcom),
	}

	user := &User{
		UserName:    valueOf(r.User.UserName),
		KKRScore:    valueOf(r.User.KKRScore),
		GroupNumber: valueOf(r.User.GroupNumber),
		Blocks:      valueOf(r.User.Blocks),
		Banned:      r.User.Banned,
		SuperUser:   r.User.SuperUser,
		Admin:       r.User.Admin,
	}

	return contact, user
}

func valueOf[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// GuideRequest представляет запрос на создание гайда
type GuideRequest struct {
	Title        string  `json:"title" validate:"required"`
	OwnerBlock   string  `json:"owner_block" validate:"required"`
	Text         string  `json:"text" validate:"required"`
	OriginalLink *string `json:"original_link,omitempty"`
}

// ToModel собирает строку Guide с временным идентификатором 0
func (r *GuideRequest) ToModel() *Guide {
	return &Guide{
		Title:        r.Title,
		OwnerBlock:   r.OwnerBlock,
		Text:         r.Text,
		OriginalLink: r.OriginalLink,
	}
}

// StatusResponse представляет простой ответ со статусом операции
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse представляет ответ с описанием ошибки
type ErrorResponse struct {
	Error string `json:"error"`
}
