package entity

// Region — ограничивающий прямоугольник одной связной области маски.
// Границы полуоткрытые: [XStart, XStop) × [YStart, YStop).
type Region struct {
	Index  int `json:"-"`       // порядковый номер области, начиная с 1
	XStart int `json:"x_start"` // минимальный x
	XStop  int `json:"x_stop"`  // максимальный x + 1
	YStart int `json:"y_start"` // минимальный y
	YStop  int `json:"y_stop"`  // максимальный y + 1
}

// Width возвращает ширину области в пикселях
func (r Region) Width() int {
	return r.XStop - r.XStart
}

// Height возвращает высоту области в пикселях
func (r Region) Height() int {
	return r.YStop - r.YStart
}

// AlertMessage — строка оповещения, привязанная к номеру области.
type AlertMessage struct {
	RegionIndex int
	Text        string
}

// MarshalText сериализует сообщение как обычную строку.
func (m AlertMessage) MarshalText() ([]byte, error) {
	return []byte(m.Text), nil
}

// UnmarshalText восстанавливает текст сообщения; номер области при этом не известен.
func (m *AlertMessage) UnmarshalText(text []byte) error {
	m.Text = string(text)
	return nil
}

func (m AlertMessage) String() string {
	return m.Text
}
