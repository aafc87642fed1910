package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the subset of *amqp.Channel used to hand off orders.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

// OrderMessage is the JSON body published for every checkout.
type OrderMessage struct {
	Reference string      `json:"reference"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Address   string      `json:"address"`
	Phone     string      `json:"phone,omitempty"`
	Lines     []OrderLine `json:"lines"`
	Total     Money       `json:"total"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

type Channel struct {
	pub   Publisher
	queue string
}

func NewChannel(pub Publisher, queue string) (*Channel, error) {
	if queue == "" {
		return nil, errors.New("amqp: queue name is required")
	}
	return &Channel{pub: pub, queue: queue}, nil
}

// DeclareQueue makes sure the durable order queue exists before publishing.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return nil
}

func (c *Channel) Name() string { return "amqp" }

func (c *Channel) Deliver(ctx context.Context, order domain.Order) (domain.Receipt, error) {
	body, err := json.Marshal(toMessage(order))
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("marshal order: %w", err)
	}

	err = c.pub.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    order.Summary.Reference,
		Timestamp:    order.Summary.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("publish to %s: %w", c.queue, err)
	}
	return domain.Receipt{Channel: c.Name(), Reference: order.Summary.Reference}, nil
}

func toMessage(order domain.Order) OrderMessage {
	s := order.Summary
	msg := OrderMessage{
		Reference: s.Reference,
		FirstName: s.Customer.FirstName,
		LastName:  s.Customer.LastName,
		Address:   s.Customer.Address,
		Phone:     s.Customer.Phone,
		Lines:     make([]OrderLine, 0, len(s.Lines)),
		Total:     Money(s.Total),
		Text:      order.Text,
		CreatedAt: s.CreatedAt,
	}
	for _, ln := range s.Lines {
		msg.Lines = append(msg.Lines, OrderLine{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: Money(ln.UnitPrice),
			LineTotal: Money(ln.LineTotal),
		})
	}
	return msg
}
