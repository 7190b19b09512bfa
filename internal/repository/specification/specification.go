package specification

import "gorm.io/gorm"

// Specification composes query predicates onto a gorm.DB chain.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
