package postgres

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mentorhub/dashboard-service/internal/repositories"
)

type repository struct {
	student repositories.StudentRepository
	user    repositories.UserRepository
	batch   repositories.BatchRepository
	pkg     repositories.PackageRepository
}

// NewRepository builds the PostgreSQL-backed repository aggregate.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		student: NewStudentPostgreSQL(db),
		user:    NewUserPostgreSQL(db),
		batch:   NewBatchPostgreSQL(db),
		pkg:     NewPackagePostgreSQL(db),
	}
}

func (r *repository) Student() repositories.StudentRepository { return r.student }
func (r *repository) User() repositories.UserRepository       { return r.user }
func (r *repository) Batch() repositories.BatchRepository     { return r.batch }
func (r *repository) Package() repositories.PackageRepository { return r.pkg }

// applySort appends an ORDER BY built from a whitelisted column name. An
// unlisted column falls back to created_at.
func applySort(db *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	column := "created_at"
	if allowed[sortBy] {
		column = sortBy
	}
	order := "desc"
	if strings.EqualFold(sortOrder, "asc") {
		order = "asc"
	}
	return db.Order(column + " " + order)
}

// applyLimit applies pagination with a sane default page size.
func applyLimit(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = 50
	}
	return db.Limit(limit).Offset(offset)
}
