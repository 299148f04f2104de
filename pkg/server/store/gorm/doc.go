// Package gorm implements the store interfaces on PostgreSQL via GORM.
package gorm
