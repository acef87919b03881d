package repository

import "errors"

var (
	// 対象が存在しない
	ErrNotFound = errors.New("not found")

	// 一意制約違反（DNI・メールなど）
	ErrDuplicate = errors.New("duplicate")

	// 参照している行があるので消せない（FK RESTRICT）
	ErrHasDependents = errors.New("has dependents")
)
