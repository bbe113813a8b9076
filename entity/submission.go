package entity

import "time"

// Field keys used in the booking session answers map. Every key written
// into a session has an entry in FieldCatalog.
const (
	FieldFullName      = "fio"
	FieldBirthDate     = "birth_date"
	FieldAge           = "age"
	FieldDriverLicense = "driver_license"
	FieldBoatLicense   = "boat_license"
	FieldRentDate      = "rent_date"
	FieldPhoneNumber   = "phone_number"
)

// CatalogEntry maps a field key to its display label.
type CatalogEntry struct {
	Key   string
	Label string
}

// FieldCatalog lists the form fields in display order. The staff
// notification iterates it to render labels.
var FieldCatalog = []CatalogEntry{
	{FieldFullName, "ФИО"},
	{FieldBirthDate, "Дата рождения"},
	{FieldAge, "Возраст"},
	{FieldDriverLicense, "Водительское удостоверение"},
	{FieldBoatLicense, "Удостоверение на управление лодкой"},
	{FieldRentDate, "Дата аренды"},
	{FieldPhoneNumber, "Телефон"},
}

// Applicant identifies the user submitting a booking.
type Applicant struct {
	UserID   int64
	Username string // Telegram handle without "@", may be empty
}

// Submission is an immutable snapshot of a completed booking form.
type Submission struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	FullName      string    `json:"fio"`
	BirthDate     string    `json:"birth_date"`
	Age           int       `json:"age"`
	DriverLicense string    `json:"driver_license"`
	BoatLicense   string    `json:"boat_license"`
	RentDate      string    `json:"rent_date"`
	PhoneNumber   string    `json:"phone_number"`
	Handle        string    `json:"handle"`
}

// Row returns the spreadsheet columns in their fixed order.
func (s *Submission) Row() []interface{} {
	return []interface{}{
		s.CreatedAt.Format("02.01.2006 15:04:05"),
		s.FullName,
		s.BirthDate,
		s.Age,
		s.DriverLicense,
		s.BoatLicense,
		s.RentDate,
		s.PhoneNumber,
		s.Handle,
	}
}
