package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User представляет клиента или сотрудника кредитного союза.
// Уникальность username обеспечивает индекс в БД — проверка перед
// регистрацией лишь ускоряет отказ, но не является источником истины.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsStaff   bool      `json:"is_staff" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// SetPassword хэширует пароль через bcrypt и сохраняет хэш.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword сверяет пароль с сохранённым хэшем.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
