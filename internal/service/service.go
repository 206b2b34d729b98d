// Package service содержит бизнес-логику справочника. Каждая операция
// получает актора явным аргументом и проверяет политику доступа до
// обращения к хранилищу.
package service

import (
	"github.com/phone-directory-api/internal/authz"
	"github.com/phone-directory-api/internal/domain"
)

// requireAuthenticated возвращает ErrUnauthenticated для nil-актора
func requireAuthenticated(actor authz.Actor) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

// authorize транслирует отказ политики в ErrForbidden
func authorize(actor authz.Actor, action authz.Action, target authz.Target) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if !authz.Authorize(actor, action, target) {
		return domain.ErrForbidden
	}
	return nil
}
