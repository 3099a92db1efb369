package domain

// StatusChange - запрошенная смена статуса. Malformed хранит ошибку разбора тела;
// она возвращается только после проверки прав.
type StatusChange[S ~string] struct {
	Status    S
	Malformed error
}
