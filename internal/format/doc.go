// Package format reformats generated TypeScript with a resolved style.
//
// Назначение: второй проход над уже сгенерированным текстом: повторный разбор
// как TypeScript и печать по config.Style с нормализацией литералов.
// Не делает: преобразования Flow, чтения конфигов, IO.
// Зависимости: internal/parser, internal/codegen, internal/config.
package format
