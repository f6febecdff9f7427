package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gerai-retail/api/internal/database"
	"github.com/gerai-retail/api/internal/enum"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// applyStatusTransition maintains the sales_records projection for an
// invoice whose payment status moved from oldStatus to newStatus. Must
// run inside the same transaction as the status write.
//
//	PENDING -> DONE    materialize one record per item
//	DONE    -> PENDING delete the invoice's records
//	same    -> same    no-op
func applyStatusTransition(ctx context.Context, store InvoiceStore, invoice database.Invoice, oldStatus, newStatus string) ([]database.SalesRecord, error) {
	switch {
	case oldStatus == newStatus:
		return nil, nil
	case newStatus == enum.PaymentStatusDone:
		return materializeInvoice(ctx, store, invoice)
	case newStatus == enum.PaymentStatusPending:
		if err := store.DeleteSalesRecordsByInvoice(ctx, invoice.ID); err != nil {
			return nil, fmt.Errorf("delete sales records: %w", err)
		}
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentStatus, newStatus)
}

// materializeInvoice writes one sales record per invoice item, snapshotting
// the product's cost at materialization time. Idempotent: if records for
// the invoice already exist nothing is written.
func materializeInvoice(ctx context.Context, store InvoiceStore, invoice database.Invoice) ([]database.SalesRecord, error) {
	existing, err := store.CountSalesRecordsByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("count sales records: %w", err)
	}
	if existing > 0 {
		return nil, nil
	}

	items, err := store.ListInvoiceItemsByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}

	records := make([]database.SalesRecord, 0, len(items))
	for _, item := range items {
		unitPrice := numericToDecimal(item.UnitPrice)

		// Cost snapshot. A deleted product or a null cost degrades to
		// zero, so profit falls back to the sale price.
		cost := decimal.Zero
		if item.ProductID.Valid {
			c, err := store.GetProductCost(ctx, item.ProductID.Bytes)
			if err != nil {
				if !errors.Is(err, pgx.ErrNoRows) {
					return nil, fmt.Errorf("get product cost: %w", err)
				}
				log.Printf("WARN: product %x missing during cost lookup for invoice %s, using zero cost", item.ProductID.Bytes, invoice.InvoiceNumber)
			} else if c.Valid {
				cost = numericToDecimal(c)
			}
		}

		profitPerUnit := unitPrice.Sub(cost)
		totalProfit := profitPerUnit.Mul(decimal.NewFromInt32(item.Quantity))

		record, err := store.CreateSalesRecord(ctx, database.CreateSalesRecordParams{
			InvoiceID:     invoice.ID,
			InvoiceNumber: invoice.InvoiceNumber,
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			SizeName:      item.SizeName,
			ColorName:     item.ColorName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TotalPrice:    item.TotalPrice,
			CostPerUnit:   decimalToNumeric(cost),
			ProfitPerUnit: decimalToNumeric(profitPerUnit),
			TotalProfit:   decimalToNumeric(totalProfit),
			SaleDate:      invoice.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("create sales record: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}
