package teams

type Team struct {
	ID   int64
	Name string
}
