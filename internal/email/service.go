package email

import (
	"fmt"
	"net/smtp"
)

// Service sends transactional mail over SMTP.
type Service struct {
	host string
	port string
	from string
}

func NewService(host, port, from string) *Service {
	return &Service{host: host, port: port, from: from}
}

// SendOrderConfirmation mails the order summary to the customer.
func (s *Service) SendOrderConfirmation(to, orderID, total string, items []OrderItem) error {
	subject := fmt.Sprintf("Order confirmation %s", shortID(orderID))
	return s.send(to, subject, BuildOrderConfirmationBody(orderID, total, items))
}

// SendShipmentNotice mails the shipment notice, with the tracking number when present.
func (s *Service) SendShipmentNotice(to, orderID, trackingNumber string) error {
	subject := fmt.Sprintf("Your order %s has shipped", shortID(orderID))
	return s.send(to, subject, BuildShipmentNoticeBody(orderID, trackingNumber))
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}

func shortID(orderID string) string {
	if len(orderID) > 8 {
		return orderID[:8]
	}
	return orderID
}
