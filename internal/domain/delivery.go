package domain

// DeliveryFailure: неудачная отправка одному получателю
type DeliveryFailure struct {
	ChatID int64
	Err    error
}

// DeliveryReport: итог рассылки по одной изменившейся локации
type DeliveryReport struct {
	LocationID int
	Matched    int // подписчиков с этой локацией
	Delivered  int
	Failures   []DeliveryFailure
}
