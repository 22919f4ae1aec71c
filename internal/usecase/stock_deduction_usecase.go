package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
)

var ErrJobAlreadyRunning = errors.New("stock deduction job already running")

const (
	stockJobLockKey = "lock:stock-deduction"

	// 初回実行で古い注文まで巻き込まないための安全弁（業務上の締め切りではない）
	DefaultDeductionWindowDays = 7
)

type OutcomeStatus string

const (
	OutcomeProcessed OutcomeStatus = "processed"
	OutcomeFailed    OutcomeStatus = "failed"
	// 別の実行が先にフラグを立てた
	OutcomeSkipped OutcomeStatus = "skipped"
)

type WarningKind string

const (
	WarningSkuNotFound        WarningKind = "sku_not_found"
	WarningInvalidQuantity    WarningKind = "invalid_quantity"
	WarningEventPublishFailed WarningKind = "event_publish_failed"
)

type OrderOutcome struct {
	OrderID      int64         `json:"order_id"`
	SerialNumber string        `json:"serial_number"`
	Status       OutcomeStatus `json:"status"`
	Reason       string        `json:"reason,omitempty"`
	// 引き落とした明細数
	DeductedLines int `json:"deducted_lines"`
}

type LineWarning struct {
	Kind         WarningKind `json:"kind"`
	OrderID      int64       `json:"order_id"`
	SerialNumber string      `json:"serial_number"`
	SKU          string      `json:"sku,omitempty"`
	Quantity     int64       `json:"quantity,omitempty"`
	Message      string      `json:"message"`
}

// 1回分の実行結果。ログ出力は呼び出し側が行う
type ProcessingReport struct {
	RunID      string         `json:"run_id"`
	WindowFrom time.Time      `json:"window_from"`
	WindowTo   time.Time      `json:"window_to"`
	Scanned    int            `json:"scanned"`
	Outcomes   []OrderOutcome `json:"outcomes"`
	Warnings   []LineWarning  `json:"warnings"`
}

func (r ProcessingReport) Processed() int { return r.count(OutcomeProcessed) }
func (r ProcessingReport) Failed() int    { return r.count(OutcomeFailed) }
func (r ProcessingReport) Skipped() int   { return r.count(OutcomeSkipped) }

func (r ProcessingReport) count(s OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

type DeductedLine struct {
	VariantID  int64  `json:"variant_id"`
	SKU        string `json:"sku"`
	Quantity   int64  `json:"quantity"`
	MovementID int64  `json:"movement_id"`
}

type StockDeductedEvent struct {
	OrderID      int64          `json:"order_id"`
	SerialNumber string         `json:"serial_number"`
	OwnerID      int64          `json:"owner_id"`
	Lines        []DeductedLine `json:"lines"`
	OccurredAt   time.Time      `json:"occurred_at"`
}

type StockDeductionUsecase struct {
	tx         repo.TransactionManager
	locker     JobLocker
	events     StockEventPublisher
	ids        IDGenerator
	windowDays int
	lockTTL    time.Duration
}

// DI。locker/events が nil なら何もしない実装を使う
func NewStockDeductionUsecase(
	tx repo.TransactionManager,
	locker JobLocker,
	events StockEventPublisher,
	ids IDGenerator,
	windowDays int,
	lockTTL time.Duration,
) *StockDeductionUsecase {
	if locker == nil {
		locker = noopLocker{}
	}
	if events == nil {
		events = noopPublisher{}
	}
	if windowDays < 1 {
		windowDays = DefaultDeductionWindowDays
	}
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}
	return &StockDeductionUsecase{
		tx:         tx,
		locker:     locker,
		events:     events,
		ids:        ids,
		windowDays: windowDays,
		lockTTL:    lockTTL,
	}
}

// [nowのdays日前の0時, now]
func DeductionWindow(now time.Time, days int) (time.Time, time.Time) {
	start := now.AddDate(0, 0, -days)
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	return from, now
}

// ピックアップ済みで未引当の注文を1件ずつ引き当てる。
// 注文単位で失敗しても全体は止めない（レポートに failed で残す）
func (u *StockDeductionUsecase) ProcessPickedUpOrders(ctx context.Context, now time.Time) (ProcessingReport, error) {
	from, to := DeductionWindow(now, u.windowDays)
	report := ProcessingReport{
		RunID:      u.ids.NewID(),
		WindowFrom: from,
		WindowTo:   to,
		Outcomes:   []OrderOutcome{},
		Warnings:   []LineWarning{},
	}

	release, acquired, err := u.locker.Acquire(ctx, stockJobLockKey, u.lockTTL)
	if err != nil {
		return report, fmt.Errorf("acquire job lock: %w", err)
	}
	if !acquired {
		return report, ErrJobAlreadyRunning
	}
	defer func() {
		_ = release(context.WithoutCancel(ctx))
	}()

	var orders []model.Order
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		orders, err = r.Orders().ListPendingDeduction(ctx, from, to)
		return err
	})
	if err != nil {
		return report, fmt.Errorf("list pending orders: %w", err)
	}
	report.Scanned = len(orders)

	for _, o := range orders {
		outcome, warnings, ev := u.processOrder(ctx, o)
		report.Outcomes = append(report.Outcomes, outcome)
		report.Warnings = append(report.Warnings, warnings...)

		if ev == nil {
			continue
		}
		ev.OccurredAt = now
		if err := u.events.PublishStockDeducted(ctx, *ev); err != nil {
			report.Warnings = append(report.Warnings, LineWarning{
				Kind:         WarningEventPublishFailed,
				OrderID:      o.ID,
				SerialNumber: o.SerialNumber,
				Message:      err.Error(),
			})
		}
	}

	return report, nil
}

// 1注文＝1トランザクション。エラーなら在庫も履歴もフラグも戻る
func (u *StockDeductionUsecase) processOrder(ctx context.Context, o model.Order) (OrderOutcome, []LineWarning, *StockDeductedEvent) {
	out := OrderOutcome{OrderID: o.ID, SerialNumber: o.SerialNumber}

	var (
		warnings []LineWarning
		lines    []DeductedLine
		claimed  bool
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		warnings = nil
		lines = nil

		//先にフラグを取る（同時実行でも二重に引かない）
		ok, err := r.Orders().MarkStockDeducted(ctx, o.ID)
		if err != nil {
			return err
		}
		claimed = ok
		if !claimed {
			return nil
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return err
		}

		for _, it := range items {
			if it.Quantity <= 0 {
				warnings = append(warnings, LineWarning{
					Kind:         WarningInvalidQuantity,
					OrderID:      o.ID,
					SerialNumber: o.SerialNumber,
					SKU:          it.VariantSKU,
					Quantity:     it.Quantity,
					Message:      "line item quantity must be positive",
				})
				continue
			}

			//SKUはそのまま引く（セット展開はしない）
			v, err := r.Variants().FindBySKU(ctx, o.UserID, it.VariantSKU)
			if errors.Is(err, repo.ErrNotFound) {
				warnings = append(warnings, LineWarning{
					Kind:         WarningSkuNotFound,
					OrderID:      o.ID,
					SerialNumber: o.SerialNumber,
					SKU:          it.VariantSKU,
					Quantity:     it.Quantity,
					Message:      "no variant matches sku",
				})
				continue
			}
			if err != nil {
				return err
			}

			mvID, err := r.Inventory().Deduct(ctx, repo.StockDeduction{
				OwnerID:   o.UserID,
				VariantID: v.ID,
				OrderID:   o.ID,
				Quantity:  it.Quantity,
				Note:      saleNote(o.SerialNumber),
			})
			if err != nil {
				return err
			}
			lines = append(lines, DeductedLine{
				VariantID:  v.ID,
				SKU:        v.SKU,
				Quantity:   it.Quantity,
				MovementID: mvID,
			})
		}
		return nil
	})

	if err != nil {
		out.Status = OutcomeFailed
		out.Reason = err.Error()
		return out, nil, nil
	}
	if !claimed {
		out.Status = OutcomeSkipped
		out.Reason = "already deducted"
		return out, nil, nil
	}

	out.Status = OutcomeProcessed
	out.DeductedLines = len(lines)
	if len(lines) == 0 {
		return out, warnings, nil
	}
	return out, warnings, &StockDeductedEvent{
		OrderID:      o.ID,
		SerialNumber: o.SerialNumber,
		OwnerID:      o.UserID,
		Lines:        lines,
	}
}

func saleNote(serial string) string {
	return "sale for order " + serial
}
