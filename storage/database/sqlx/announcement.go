package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/drivers"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/announcement"
)

const announcementTable = "announcements"

var psqlDialect = drivers.Dialect{LQ: '"', RQ: '"', UseIndexPlaceholders: true}

type announcementRow struct {
	ID              string      `db:"id" boil:"id"`
	Title           string      `db:"title" boil:"title"`
	Description     string      `db:"description" boil:"description"`
	Category        string      `db:"category" boil:"category"`
	Hashtag         string      `db:"hashtag" boil:"hashtag"`
	RegistrationURL null.String `db:"registration_url" boil:"registration_url"`
	CreatedBy       null.String `db:"created_by" boil:"created_by"`
	CreatedAt       time.Time   `db:"created_at" boil:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" boil:"updated_at"`
}

func toRow(a announcement.Announcement) announcementRow {
	return announcementRow{
		ID:              a.ID,
		Title:           a.Title,
		Description:     a.Description,
		Category:        a.Category,
		Hashtag:         a.Hashtag,
		RegistrationURL: null.NewString(a.RegistrationURL, a.RegistrationURL != ""),
		CreatedBy:       null.NewString(a.CreatedBy, a.CreatedBy != ""),
		CreatedAt:       a.CreatedAt.UTC(),
		UpdatedAt:       a.UpdatedAt.UTC(),
	}
}

func (r announcementRow) announcement() announcement.Announcement {
	return announcement.Announcement{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Hashtag:         r.Hashtag,
		RegistrationURL: r.RegistrationURL.String,
		CreatedBy:       r.CreatedBy.String,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
}

func fromRows(rows []announcementRow) []announcement.Announcement {
	anns := make([]announcement.Announcement, 0, len(rows))
	for _, r := range rows {
		anns = append(anns, r.announcement())
	}
	return anns
}

type announcementRepository struct {
	db *sqlx.DB
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *sqlx.DB) announcement.Repository {
	return &announcementRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to announcement.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return announcement.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := `INSERT INTO announcements
		(id, title, description, category, hashtag, registration_url, created_by, created_at, updated_at)
		VALUES
		(:id, :title, :description, :category, :hashtag, :registration_url, :created_by, :created_at, :updated_at)`
	row := toRow(a)
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "inserting announcement")
	}
	return row.announcement(), nil
}

// validIDs drops ids that cannot be a UUID; the id column would reject them with a syntax error.
func validIDs(ids ...string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	return valid
}

func (repo *announcementRepository) GetAnnouncementByID(ctx context.Context, id string) (announcement.Announcement, error) {
	if len(validIDs(id)) == 0 {
		return announcement.Announcement{}, announcement.ErrNotFound
	}
	var row announcementRow
	q := repo.db.Rebind(`SELECT * FROM announcements WHERE id = ?`)
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return announcement.Announcement{}, trapNoRowsErr(err, "selecting announcement")
	}
	return row.announcement(), nil
}

func (repo *announcementRepository) QueryAllAnnouncements(ctx context.Context) ([]announcement.Announcement, error) {
	var rows []announcementRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM announcements ORDER BY created_at DESC, id`); err != nil {
		return nil, errors.Wrap(err, "selecting announcements")
	}
	return fromRows(rows), nil
}

func (repo *announcementRepository) FilterAnnouncements(ctx context.Context, filter announcement.QueryFilter) ([]announcement.Announcement, error) {
	var rows []announcementRow
	if err := filterQuery(filter).Bind(ctx, repo.db, &rows); err != nil {
		return nil, errors.Wrap(err, "filtering announcements")
	}
	return fromRows(rows), nil
}

func (repo *announcementRepository) DeleteAnnouncementsByID(ctx context.Context, ids ...string) error {
	ids = validIDs(ids...)
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM announcements WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting announcements")
	}
	return nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterQuery builds the SELECT matching `filter`; date ranges live in the hashtag and are not filtered here.
func filterQuery(filter announcement.QueryFilter) *queries.Query {
	mods := []qm.QueryMod{
		qm.Select("*"),
		qm.From(announcementTable),
	}
	if filter.Search != "" {
		val := "%" + likeEscaper.Replace(filter.Search) + "%"
		mods = append(mods, qm.Expr(qm.Where(`title ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\'`, val, val)))
	}
	if filter.Category != "" {
		mods = append(mods, qm.Where("category = ?", filter.Category))
	}

	ord := filter.Ordering
	if !isOrderingField(ord.Field) {
		ord = core.DBOrdering{Field: "created_at"}
	}
	mods = append(mods, qm.OrderBy(ord.String()+", id"))

	q := &queries.Query{}
	queries.SetDialect(q, &psqlDialect)
	qm.Apply(q, mods...)
	return q
}

func isOrderingField(field string) bool {
	for _, f := range announcement.OrderingFields {
		if f == field {
			return true
		}
	}
	return false
}
