package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhone UserState = "awaiting_phone" // Ожидание номера телефона
	StateAwaitingEmail UserState = "awaiting_email" // Ожидание адреса почты
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание снимка посева
	StateProcessing    UserState = "processing"     // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID           int64     // Telegram User ID
	ChatID       int64     // Telegram Chat ID
	State        UserState // Текущее состояние пользователя
	MobileNumber string    // номер для ссылки WhatsApp
	Email        string    // адрес для письма с оповещением
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// Contact возвращает контактные данные пользователя в виде входа запроса
func (u *User) Contact() ContactInput {
	return ContactInput{MobileNumber: u.MobileNumber, Email: u.Email}
}
