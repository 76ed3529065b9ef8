package submission

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/loscheesy/ordering/internal/domain"
	"github.com/loscheesy/ordering/internal/formatter"
	"github.com/loscheesy/ordering/internal/logger"
	"github.com/loscheesy/ordering/internal/menu"
)

// Publisher announces confirmed orders to downstream consumers.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, rec domain.OrderRecord) error
}

// FailureRecorder keeps track of confirmations that could not be sent.
type FailureRecorder interface {
	RecordConfirmationFailure(ctx context.Context, orderNumber string, cause error) error
}

// Orchestrator delivers orders to the restaurant and, best effort, a
// confirmation to the customer.
type Orchestrator struct {
	intake          IntakeClient
	endpoints       *EndpointTable
	confirmationURL string
	newNumber       NumberFunc
	now             func() time.Time

	publisher Publisher
	failures  FailureRecorder

	followUps sync.WaitGroup
}

// NewOrchestrator returns an orchestrator. An empty confirmationURL disables
// customer confirmations.
func NewOrchestrator(intake IntakeClient, endpoints *EndpointTable, confirmationURL string) *Orchestrator {
	return &Orchestrator{
		intake:          intake,
		endpoints:       endpoints,
		confirmationURL: confirmationURL,
		newNumber:       RandomOrderNumber,
		now:             time.Now,
	}
}

func (o *Orchestrator) WithPublisher(p Publisher) *Orchestrator {
	o.publisher = p
	return o
}

func (o *Orchestrator) WithFailureRecorder(r FailureRecorder) *Orchestrator {
	o.failures = r
	return o
}

func (o *Orchestrator) WithNumberFunc(f NumberFunc) *Orchestrator {
	o.newNumber = f
	return o
}

// Validate checks the required customer fields.
func Validate(customer domain.CustomerInfo) error {
	var missing []string
	if strings.TrimSpace(customer.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(customer.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Submit sends the order to the location's intake endpoint. On success the
// customer confirmation and the order event are dispatched in the background
// and never affect the returned receipt.
func (o *Orchestrator) Submit(ctx context.Context, customer domain.CustomerInfo, lines []domain.CartLine, loc domain.Location) (domain.Receipt, error) {
	if err := Validate(customer); err != nil {
		return domain.Receipt{}, err
	}

	rec := domain.NewOrderRecord(o.newNumber(), customer, menu.LocationName(loc), lines, o.now())
	endpoint := o.endpoints.Resolve(loc)
	summary := formatter.Format(rec)

	log := logger.FromContext(ctx).With(
		slog.String("order_number", rec.OrderNumber),
		slog.String("location", rec.LocationName))

	if err := o.intake.Send(ctx, endpoint, summary.Fields); err != nil {
		log.Error("order delivery failed", slog.String("endpoint", endpoint), slog.Any("error", err))
		return domain.Receipt{}, &DeliveryError{OrderNumber: rec.OrderNumber, Endpoint: endpoint, Err: err}
	}
	log.Info("order delivered", slog.String("total", rec.Total.StringFixed(2)))
	if rec.Customer.HasEmail() && o.confirmationURL == "" {
		log.Warn("customer confirmation skipped, no confirmation endpoint configured")
	}

	o.followUp(context.WithoutCancel(ctx), rec)

	return domain.Receipt{
		OrderNumber:  rec.OrderNumber,
		LocationName: rec.LocationName,
		Total:        rec.Total,
		Summary:      summary.Text,
		PlacedAt:     rec.CreatedAt,
	}, nil
}

// Wait blocks until background follow-ups have finished.
func (o *Orchestrator) Wait() {
	o.followUps.Wait()
}

func (o *Orchestrator) followUp(ctx context.Context, rec domain.OrderRecord) {
	if !o.hasConfirmation(rec) && o.publisher == nil {
		return
	}

	o.followUps.Add(1)
	go func() {
		defer o.followUps.Done()

		if o.hasConfirmation(rec) {
			o.sendConfirmation(ctx, rec)
		}
		if o.publisher != nil {
			if err := o.publisher.PublishOrderPlaced(ctx, rec); err != nil {
				logger.FromContext(ctx).Warn("order event publish failed",
					slog.String("order_number", rec.OrderNumber), slog.Any("error", err))
			}
		}
	}()
}

func (o *Orchestrator) hasConfirmation(rec domain.OrderRecord) bool {
	return o.confirmationURL != "" && rec.Customer.HasEmail()
}

func (o *Orchestrator) sendConfirmation(ctx context.Context, rec domain.OrderRecord) {
	log := logger.FromContext(ctx).With(slog.String("order_number", rec.OrderNumber))

	confirmation := formatter.FormatConfirmation(rec)
	err := o.intake.Send(ctx, o.confirmationURL, confirmation.Fields)
	if err == nil {
		log.Info("customer confirmation sent")
		return
	}

	cerr := &ConfirmationError{OrderNumber: rec.OrderNumber, Err: err}
	log.Warn("customer confirmation failed, order was delivered", slog.Any("error", cerr))

	if o.failures != nil {
		if rerr := o.failures.RecordConfirmationFailure(ctx, rec.OrderNumber, cerr); rerr != nil {
			log.Warn("record confirmation failure failed", slog.Any("error", rerr))
		}
	}
}
