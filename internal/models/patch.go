package models

// Патчи описывают частичное обновление: nil означает "оставить без изменений".
// Каждый патч явно перечисляет колонки, которые разрешено менять.

// UserPatch содержит изменяемые поля пользователя
type UserPatch struct {
	UserName    *string `json:"user_name,omitempty"`
	KKRScore    *int    `json:"kkr_score,omitempty"`
	GroupNumber *string `json:"group_number,omitempty"`
	Blocks      *string `json:"blocks,omitempty"`
	Banned      *bool   `json:"banned,omitempty"`
	SuperUser   *bool   `json:"super_user,omitempty"`
	Admin       *bool   `json:"admin,omitempty"`
}

// Updates возвращает набор колонок для обновления
func (p UserPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.UserName != nil {
		updates["user_name"] = *p.UserName
	}
	if p.KKRScore != nil {
		updates["kkr_score"] = *p.KKRScore
	}
	if p.GroupNumber != nil {
		updates["group_number"] = *p.GroupNumber
	}
	if p.Blocks != nil {
		updates["blocks"] = *p.Blocks
	}
	if p.Banned != nil {
		updates["banned"] = *p.Banned
	}
	if p.SuperUser != nil {
		updates["super_user"] = *p.SuperUser
	}
	if p.Admin != nil {
		updates["admin"] = *p.Admin
	}
	return updates
}

// IsEmpty сообщает, что патч ничего не меняет
func (p UserPatch) IsEmpty() bool {
	return len(p.Updates()) == 0
}

// ContactPatch содержит изменяемые поля контактной информации
type ContactPatch struct {
	FIO         *string `json:"fio,omitempty"`
	KKRName     *string `json:"kkr_name,omitempty"`
	GroupNumber *string `json:"group_number,omitempty"`
	Location    *string `json:"location,omitempty"`
	Blocks      *string `json:"blocks,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	VK          *string `json:"vk,omitempty"`
	TG          *string `json:"tg,omitempty"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Budget      *bool   `json:"budget,omitempty"`
	InProfcom   *bool   `json:"in_profcom,omitempty"`
}

// Updates возвращает набор колонок для обновления
func (p ContactPatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.FIO != nil {
		updates["fio"] = *p.FIO
	}
	if p.KKRName != nil {
		updates["kkr_name"] = *p.KKRName
	}
	if p.GroupNumber != nil {
		updates["group_number"] = *p.GroupNumber
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Blocks != nil {
		updates["blocks"] = *p.Blocks
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.VK != nil {
		updates["vk"] = *p.VK
	}
	if p.TG != nil {
		updates["tg"] = *p.TG
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Budget != nil {
		updates["budget"] = *p.Budget
	}
	if p.InProfcom != nil {
		updates["in_profcom"] = *p.InProfcom
	}
	return updates
}

// IsEmpty сообщает, что патч ничего не меняет
func (p ContactPatch) IsEmpty() bool {
	return len(p.Updates()) == 0
}

// ProfilePatch это тело запроса на обновление профиля.
// Поля group_number и blocks дублируются в User и ContactInfo.
type ProfilePatch = ContactPatch

// SharedUserPatch возвращает патч пользователя с дублируемыми полями профиля
func (p ContactPatch) SharedUserPatch() UserPatch {
	return UserPatch{
		GroupNumber: p.GroupNumber,
		Blocks:      p.Blocks,
	}
}

// GuidePatch содержит изменяемые поля гайда
type GuidePatch struct {
	Title        *string `json:"title,omitempty"`
	OwnerBlock   *string `json:"owner_block,omitempty"`
	Text         *string `json:"text,omitempty"`
	OriginalLink *string `json:"original_link,omitempty"`
}

// Updates возвращает набор колонок для обновления
func (p GuidePatch) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.OwnerBlock != nil {
		updates["owner_block"] = *p.OwnerBlock
	}
	if p.Text != nil {
		updates["text"] = *p.Text
	}
	if p.OriginalLink != nil {
		updates["original_link"] = *p.OriginalLink
	}
	return updates
}

// IsEmpty сообщает, что патч ничего не меняет
func (p GuidePatch) IsEmpty() bool {
	return len(p.Updates()) == 0
}

// ContactFilter задает условия поиска контактов, все заданные условия объединяются через AND
type ContactFilter struct {
	GroupNumber *string `json:"group_number,omitempty"`
	Blocks      *string `json:"blocks,omitempty"`
	InProfcom   *bool   `json:"in_profcom,omitempty"`
	Budget      *bool   `json:"budget,omitempty"`
}

// Conditions возвращает условия равенства для запроса
func (f ContactFilter) Conditions() map[string]interface{} {
	conditions := make(map[string]interface{})
	if f.GroupNumber != nil {
		conditions["group_number"] = *f.GroupNumber
	}
	if f.Blocks != nil {
		conditions["blocks"] = *f.Blocks
	}
	if f.InProfcom != nil {
		conditions["in_profcom"] = *f.InProfcom
	}
	if f.Budget != nil {
		conditions["budget"] = *f.Budget
	}
	return conditions
}
