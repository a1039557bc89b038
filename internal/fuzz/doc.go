// Package fuzztests houses Go fuzz harnesses for the conversion pipeline
// (source -> lexer -> parser -> convert). They guard against panics and
// hangs on arbitrary input.
//
// Назначение: прогонять случайные байты через лексер, парсер и конвертер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
