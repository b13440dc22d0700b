// Package optimistic реализует паттерн оптимистичной мутации:
// снимок состояния -> локальное применение -> сетевой вызов -> откат при ошибке.
package optimistic

import "context"

// Mutate выполняет оптимистичную мутацию
//
// Порядок шагов фиксированный:
//  1. snapshot() - снимок текущего состояния (неизменяемая копия)
//  2. apply() - немедленное локальное применение мутации
//  3. call(ctx) - подтверждение на бэкенде
//  4. restore(snap) - откат к снимку, если call вернул ошибку
//
// Откат идет именно к снимку, а не через повторный fetch: это исключает
// гонки с параллельными мутациями других сущностей.
func Mutate[S any](
	ctx context.Context,
	snapshot func() S,
	apply func(),
	call func(ctx context.Context) error,
	restore func(snap S),
) error {
	snap := snapshot()
	apply()

	if err := call(ctx); err != nil {
		restore(snap)
		return err
	}
	return nil
}
