package models

// Business — запись каталога контрагентов (получателей платежей).
// Не принадлежит пользователю; видна всем аутентифицированным.
type Business struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null"`
	Category   string `json:"category"`
	Sanctioned bool   `json:"sanctioned" gorm:"default:false"`
}
