package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrOrderNotFound = errors.New("service order not found")

// ListFilter narrows and pages the order list. Zero values mean "no filter".
type ListFilter struct {
	Search   string
	Page     int
	Limit    int
	OpenOnly bool
}

type Repository interface {
	// Store stores a new ServiceOrder and returns its generated id.
	Store(ctx context.Context, o ServiceOrder) (int, error)
	GetById(ctx context.Context, id int) (ServiceOrder, error)
	GetAll(ctx context.Context, filter ListFilter) ([]ServiceOrder, int, error)
	// Update persists the full order snapshot, checkpoints included.
	Update(ctx context.Context, o ServiceOrder) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// checkpointColumns is the fixed column order used by every query that touches
// the checkpoint set. It must match scanCheckpoints.
const checkpointColumns = `arrival, reception_start, paperwork_printed, estimate_start, estimate_end,
		work_start, work_end, handback,
		confirmation_wait_start, confirmation_wait_end,
		parts_wait_1_start, parts_wait_1_end,
		parts_wait_2_start, parts_wait_2_end,
		sublet_wait_start, sublet_wait_end,
		rest_break_start, rest_break_end,
		other_stop_start, other_stop_end`

func (r RepositoryImpl) Store(ctx context.Context, o ServiceOrder) (int, error) {
	query := `INSERT INTO service_order (
                    uid,
                    order_number,
                    customer_name,
                    vehicle_plate,
                    service_category,
                    notes
				) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		o.Uid,
		o.OrderNumber,
		o.CustomerName,
		o.VehiclePlate,
		o.ServiceCategory,
		o.Notes,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store service order: %v", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepositoryImpl) GetById(ctx context.Context, id int) (ServiceOrder, error) {
	query := fmt.Sprintf(`SELECT id, uid, order_number, customer_name, vehicle_plate, service_category, notes,
		%s FROM service_order WHERE id = $1`, checkpointColumns)

	row := r.db.QueryRowContext(ctx, query, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ServiceOrder{}, ErrOrderNotFound
		}
		err := fmt.Errorf("could not scan service order: %v", err)
		log.Error(err)
		return ServiceOrder{}, err
	}
	return o, nil
}

func (r RepositoryImpl) GetAll(ctx context.Context, filter ListFilter) ([]ServiceOrder, int, error) {
	where := "WHERE 1=1"
	args := make([]interface{}, 0, 4)
	if filter.Search != "" {
		where += " AND (order_number LIKE $1 OR customer_name LIKE $2 OR vehicle_plate LIKE $3)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.OpenOnly {
		where += " AND handback IS NULL"
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM service_order %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		err := fmt.Errorf("could not count service orders: %v", err)
		log.Error(err)
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 25
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	query := fmt.Sprintf(`SELECT id, uid, order_number, customer_name, vehicle_plate, service_category, notes,
		%s FROM service_order %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		checkpointColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]ServiceOrder, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			err := fmt.Errorf("could not scan service order: %v", err)
			log.Error(err)
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r RepositoryImpl) Update(ctx context.Context, o ServiceOrder) (bool, error) {
	query := `UPDATE service_order SET
		customer_name = $1, vehicle_plate = $2, service_category = $3, notes = $4,
		arrival = $5, reception_start = $6, paperwork_printed = $7, estimate_start = $8, estimate_end = $9,
		work_start = $10, work_end = $11, handback = $12,
		confirmation_wait_start = $13, confirmation_wait_end = $14,
		parts_wait_1_start = $15, parts_wait_1_end = $16,
		parts_wait_2_start = $17, parts_wait_2_end = $18,
		sublet_wait_start = $19, sublet_wait_end = $20,
		rest_break_start = $21, rest_break_end = $22,
		other_stop_start = $23, other_stop_end = $24
		WHERE id = $25`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	cp := &o.Checkpoints
	result, err := stmt.ExecContext(ctx,
		o.CustomerName, o.VehiclePlate, o.ServiceCategory, o.Notes,
		toMillis(cp.Arrival), toMillis(cp.ReceptionStart), toMillis(cp.PaperworkPrinted),
		toMillis(cp.EstimateStart), toMillis(cp.EstimateEnd),
		toMillis(cp.WorkStart), toMillis(cp.WorkEnd), toMillis(cp.Handback),
		toMillis(cp.ConfirmationWaitStart), toMillis(cp.ConfirmationWaitEnd),
		toMillis(cp.PartsWait1Start), toMillis(cp.PartsWait1End),
		toMillis(cp.PartsWait2Start), toMillis(cp.PartsWait2End),
		toMillis(cp.SubletWaitStart), toMillis(cp.SubletWaitEnd),
		toMillis(cp.RestBreakStart), toMillis(cp.RestBreakEnd),
		toMillis(cp.OtherStopStart), toMillis(cp.OtherStopEnd),
		o.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (ServiceOrder, error) {
	var o ServiceOrder
	millis := make([]*int64, 20)
	dest := []interface{}{
		&o.Id, &o.Uid, &o.OrderNumber, &o.CustomerName, &o.VehiclePlate, &o.ServiceCategory, &o.Notes,
	}
	for i := range millis {
		dest = append(dest, &millis[i])
	}
	if err := s.Scan(dest...); err != nil {
		return ServiceOrder{}, err
	}

	cp := &o.Checkpoints
	slots := []**time.Time{
		&cp.Arrival, &cp.ReceptionStart, &cp.PaperworkPrinted, &cp.EstimateStart, &cp.EstimateEnd,
		&cp.WorkStart, &cp.WorkEnd, &cp.Handback,
		&cp.ConfirmationWaitStart, &cp.ConfirmationWaitEnd,
		&cp.PartsWait1Start, &cp.PartsWait1End,
		&cp.PartsWait2Start, &cp.PartsWait2End,
		&cp.SubletWaitStart, &cp.SubletWaitEnd,
		&cp.RestBreakStart, &cp.RestBreakEnd,
		&cp.OtherStopStart, &cp.OtherStopEnd,
	}
	for i, m := range millis {
		if m != nil {
			t := time.UnixMilli(*m).UTC()
			*slots[i] = &t
		}
	}
	return o, nil
}

func toMillis(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}
