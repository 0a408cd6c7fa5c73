package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clinicbook/infras/otel"
	"clinicbook/infras/sqlite"
	"clinicbook/internal/domains/booking/model"
	"clinicbook/internal/domains/booking/model/dto"
	"clinicbook/shared/constant"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/logger"
	"clinicbook/shared/timezone"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const insertColumns = "id, first_name, last_name, email, phone, service, slot_date, slot_time, notes, price, status, created_at"

const insertPlaceholders = ":id, :first_name, :last_name, :email, :phone, :service, :slot_date, :slot_time, :notes, :price, :status, :created_at"

// sortableColumns guards ORDER BY against arbitrary user input.
var sortableColumns = map[string]bool{
	model.FieldSlotDate:  true,
	model.FieldSlotTime:  true,
	model.FieldCreatedAt: true,
	model.FieldLastName:  true,
}

type sqliteRepository struct {
	db   *sqlite.Connection
	otel otel.Otel
}

// NewSQLite builds the relational backend on an open connection.
func NewSQLite(db *sqlite.Connection, otl otel.Otel) Booking {
	return &sqliteRepository{
		db:   db,
		otel: otl,
	}
}

func (repo *sqliteRepository) List(ctx context.Context) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.List")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at DESC", insertColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.Booking

	if err := repo.db.DB.SelectContext(ctx, &bookings, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

func (repo *sqliteRepository) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListByDate")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE slot_date = :slot_date ORDER BY slot_time", insertColumns, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var bookings []model.Booking

	if err := prepare.SelectContext(ctx, &bookings, map[string]any{model.FieldSlotDate: date}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list bookings by date: %w", err)
	}

	return bookings, nil
}

func (repo *sqliteRepository) Exists(ctx context.Context, date, timeLabel string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Exists")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE slot_date = :slot_date AND slot_time = :slot_time)",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	exist := false
	args := map[string]any{
		model.FieldSlotDate: date,
		model.FieldSlotTime: timeLabel,
	}

	if err := prepare.GetContext(ctx, &exist, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check booking existence: %w", err)
	}

	return exist, nil
}

func (repo *sqliteRepository) Insert(ctx context.Context, booking model.Booking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Insert")
	defer scope.End()

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", model.TableName, insertColumns, insertPlaceholders)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.DB.NamedExecContext(ctx, query, booking)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			// UNIQUE(slot_date, slot_time), the storage-level guard against
			// two concurrent requests taking the same slot.
			return ErrSlotTaken
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (repo *sqliteRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Delete")
	defer scope.End()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = :id", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.DB.NamedExecContext(ctx, query, map[string]any{model.FieldID: id})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to delete booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (repo *sqliteRepository) Search(ctx context.Context, req dto.SearchBookingsRequest) ([]model.Booking, int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Search")
	defer scope.End()

	group := searchFilter(req)

	where, args := group.GetWhereClause()
	if where != "" {
		where = " WHERE " + where
	}

	countQuery := fmt.Sprintf("SELECT COUNT(id) FROM %s%s", model.TableName, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, countQuery)

	total := 0

	countStmt, err := repo.db.DB.PrepareNamedContext(ctx, countQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer countStmt.Close()

	if err := countStmt.GetContext(ctx, &total, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	ordering := orderingClause(req.Params)

	pagination := ""
	if req.Params.Page > 0 && req.Params.Limit > 0 {
		args["limit"] = req.Params.Limit
		args["offset"] = (req.Params.Page - 1) * req.Params.Limit
		pagination = " LIMIT :limit OFFSET :offset"
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s%s%s", insertColumns, model.TableName, where, ordering, pagination)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var bookings []model.Booking

	if err := prepare.SelectContext(ctx, &bookings, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to search bookings: %w", err)
	}

	return bookings, total, nil
}

func (repo *sqliteRepository) Stats(ctx context.Context) (model.Stats, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Stats")
	defer scope.End()

	stats := model.Stats{ByStatus: map[string]int{}}

	query := fmt.Sprintf(
		"SELECT COUNT(id), COUNT(DISTINCT slot_date), COALESCE(SUM(slot_date >= ?), 0) FROM %s",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	today := timezone.Now().Format(constant.DateLayout)

	row := repo.db.DB.QueryRowxContext(ctx, query, today)
	if err := row.Scan(&stats.Total, &stats.Dates, &stats.Upcoming); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}

	statusQuery := fmt.Sprintf("SELECT status, COUNT(id) FROM %s GROUP BY status", model.TableName)

	rows, err := repo.db.DB.QueryxContext(ctx, statusQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to aggregate booking statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status sql.NullString
			count  int
		)

		if err := rows.Scan(&status, &count); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return stats, fmt.Errorf("failed to scan booking status row: %w", err)
		}

		stats.ByStatus[status.String] = count
	}

	if err := rows.Err(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return stats, fmt.Errorf("failed to iterate booking status rows: %w", err)
	}

	return stats, nil
}

func searchFilter(req dto.SearchBookingsRequest) gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if req.Date != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldSlotDate,
			Operator: gDto.FilterOperatorEq,
			Value:    req.Date,
		})
	}

	if req.Status != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    req.Status,
		})
	}

	if req.Text != "" {
		group.Filters = append(group.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldFirstName, Operator: gDto.FilterOperatorLike, Value: req.Text},
				gDto.Filter{Field: model.FieldLastName, Operator: gDto.FilterOperatorLike, Value: req.Text},
				gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: req.Text},
			},
		})
	}

	return group
}

func orderingClause(params gDto.QueryParams) string {
	if params.SortBy == "" || !sortableColumns[params.SortBy] {
		return " ORDER BY created_at DESC"
	}

	dir := gDto.SortDirAsc
	if strings.EqualFold(params.SortDir, gDto.SortDirDesc) {
		dir = gDto.SortDirDesc
	}

	return fmt.Sprintf(" ORDER BY %s %s", params.SortBy, dir)
}
