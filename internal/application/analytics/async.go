package analytics

// result valor y error de una consulta lanzada en paralelo.
type result[T any] struct {
	val T
	err error
}

// async ejecuta fn en una goroutine; el canal tiene buffer 1 para que la
// goroutine no quede bloqueada si el llamador retorna antes por otro error.
func async[T any](fn func() (T, error)) <-chan result[T] {
	ch := make(chan result[T], 1)
	go func() {
		v, err := fn()
		ch <- result[T]{v, err}
	}()
	return ch
}
