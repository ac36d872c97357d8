package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vmrkv/CST-BookingService/internal/domain"
	"github.com/vmrkv/CST-BookingService/pkg/psqlbuilder"
	"github.com/vmrkv/CST-BookingService/pkg/txmanager"
)

var templateColumns = []string{
	"id",
	"consultant_id",
	"day_of_week",
	"start_time",
	"end_time",
	"max_bookings",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий расписаний: консультанты, недельные шаблоны,
// перерывы и отпуска
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// --- Консультанты ---

// ListActiveConsultants получает всех активных консультантов
func (r *Repository) ListActiveConsultants(ctx context.Context) ([]*domain.Consultant, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "is_active", "created_at", "updated_at").
		From("consultants").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveConsultants - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveConsultants - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	consultants := make([]*domain.Consultant, 0)
	for rows.Next() {
		var c domain.Consultant
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActiveConsultants - scan row: %v", ErrScanRow, err)
		}

		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time
		consultants = append(consultants, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveConsultants - rows error: %v", ErrScanRow, err)
	}

	return consultants, nil
}

// GetActiveConsultantByID получает активного консультанта по ID
func (r *Repository) GetActiveConsultantByID(ctx context.Context, id int64) (*domain.Consultant, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "is_active", "created_at", "updated_at").
		From("consultants").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveConsultantByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Consultant
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Email, &c.IsActive, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConsultantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveConsultantByID - scan consultant: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}

// --- Недельные шаблоны ---

// ListTemplatesForDay получает активные шаблоны всех консультантов
// на указанный день недели (0=воскресенье .. 6=суббота)
func (r *Repository) ListTemplatesForDay(ctx context.Context, dayOfWeek int) ([]*domain.WeeklyTemplate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("weekly_templates").
		Where(squirrel.Eq{"day_of_week": dayOfWeek, "is_active": true}).
		OrderBy("consultant_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplatesForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplatesForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// ListTemplatesByConsultant получает все активные шаблоны консультанта
// (недельное представление)
func (r *Repository) ListTemplatesByConsultant(ctx context.Context, consultantID int64) ([]*domain.WeeklyTemplate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(templateColumns...).
		From("weekly_templates").
		Where(squirrel.Eq{"consultant_id": consultantID, "is_active": true}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplatesByConsultant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTemplatesByConsultant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// DeleteDayTemplates удаляет все шаблоны консультанта на день недели.
// Используется вместе с InsertTemplates внутри транзакции для операции
// replace/copy (delete-then-insert, атомарно по дню).
func (r *Repository) DeleteDayTemplates(ctx context.Context, consultantID int64, dayOfWeek int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("weekly_templates").
		Where(squirrel.Eq{"consultant_id": consultantID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteDayTemplates - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteDayTemplates - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// InsertTemplates вставляет шаблоны консультанта
func (r *Repository) InsertTemplates(ctx context.Context, templates []*domain.WeeklyTemplate) error {
	if len(templates) == 0 {
		return nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("weekly_templates").
		Columns("consultant_id", "day_of_week", "start_time", "end_time", "max_bookings", "is_active")

	for _, t := range templates {
		insertBuilder = insertBuilder.Values(
			t.ConsultantID,
			t.DayOfWeek,
			t.StartTime,
			t.EndTime,
			t.MaxBookings,
			t.IsActive,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertTemplates - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertTemplates - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// --- Перерывы ---

// ListBreaksForDate получает активные перерывы всех консультантов,
// действующие в указанную дату: повторяющиеся на этот день недели
// и разовые на эту дату
func (r *Repository) ListBreaksForDate(ctx context.Context, date time.Time) ([]*domain.Break, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "consultant_id", "day_of_week", "break_date",
		"start_time", "end_time", "is_active", "created_at", "updated_at",
	).
		From("breaks").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"day_of_week": int(date.Weekday())},
			squirrel.Eq{"break_date": date},
		}).
		OrderBy("consultant_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBreaksForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBreaksForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]*domain.Break, 0)
	for rows.Next() {
		var b domain.Break
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID, &b.ConsultantID, &b.DayOfWeek, &b.Date,
			&b.StartTime, &b.EndTime, &b.IsActive, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBreaksForDate - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		breaks = append(breaks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBreaksForDate - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}

// CreateBreak создает перерыв консультанта
func (r *Repository) CreateBreak(ctx context.Context, b *domain.Break) (*domain.Break, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("breaks").
		Columns("consultant_id", "day_of_week", "break_date", "start_time", "end_time", "is_active").
		Values(b.ConsultantID, b.DayOfWeek, b.Date, b.StartTime, b.EndTime, b.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBreak - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBreak - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// --- Отпуска ---

// ListTimeOffForDate получает активные отпуска всех консультантов,
// покрывающие указанную дату
func (r *Repository) ListTimeOffForDate(ctx context.Context, date time.Time) ([]*domain.TimeOff, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "consultant_id", "start_date", "end_date",
		"reason", "is_active", "created_at", "updated_at",
	).
		From("time_off").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		OrderBy("consultant_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOffForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeOffForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	timeOffs := make([]*domain.TimeOff, 0)
	for rows.Next() {
		var t domain.TimeOff
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&t.ID, &t.ConsultantID, &t.StartDate, &t.EndDate,
			&t.Reason, &t.IsActive, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListTimeOffForDate - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time
		timeOffs = append(timeOffs, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeOffForDate - rows error: %v", ErrScanRow, err)
	}

	return timeOffs, nil
}

// CreateTimeOff создает отпуск консультанта
func (r *Repository) CreateTimeOff(ctx context.Context, t *domain.TimeOff) (*domain.TimeOff, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_off").
		Columns("consultant_id", "start_date", "end_date", "reason", "is_active").
		Values(t.ConsultantID, t.StartDate, t.EndDate, t.Reason, t.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateTimeOff - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return t, nil
}

// scanTemplates сканирует результаты запроса в слайс шаблонов
func scanTemplates(rows *sql.Rows) ([]*domain.WeeklyTemplate, error) {
	templates := make([]*domain.WeeklyTemplate, 0)

	for rows.Next() {
		var t domain.WeeklyTemplate
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.ConsultantID,
			&t.DayOfWeek,
			&t.StartTime,
			&t.EndTime,
			&t.MaxBookings,
			&t.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time
		templates = append(templates, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}
