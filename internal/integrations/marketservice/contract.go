package marketservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TokenSource источник bearer-токена текущей сессии
// Пустой токен означает неавторизованную сессию
type TokenSource interface {
	Token() string
}
