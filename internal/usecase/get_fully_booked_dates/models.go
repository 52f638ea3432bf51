package get_fully_booked_dates

// Response модель ответа со списком полностью занятых дат
type Response struct {
	Dates []string // Даты в формате YYYY-MM-DD по возрастанию
}
