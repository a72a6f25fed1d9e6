package apperr

import "errors"

// Базовые ошибки уровня хранилища и доступа. Репозитории и сервисы
// оборачивают их через fmt.Errorf + %w, наружу не должна выходить
// ни одна "сырая" ошибка драйвера БД.
var (
	ErrNotFound  = errors.New("запись не найдена")
	ErrForbidden = errors.New("доступ запрещен")
	ErrConflict  = errors.New("конфликт уникальности")
	ErrTransient = errors.New("временная ошибка хранилища")
)
