package station

// ConnectorType is a plug standard offered by a station.
type ConnectorType string

const (
	ConnectorType2    ConnectorType = "type2"
	ConnectorCCS      ConnectorType = "ccs"
	ConnectorCHAdeMO  ConnectorType = "chademo"
	ConnectorTesla    ConnectorType = "tesla"
	ConnectorSchuko   ConnectorType = "schuko"
)

func (c ConnectorType) String() string {
	return string(c)
}

func (c ConnectorType) IsValid() bool {
	switch c {
	case ConnectorType2, ConnectorCCS, ConnectorCHAdeMO, ConnectorTesla, ConnectorSchuko:
		return true
	default:
		return false
	}
}

func NewConnectorType(s string) (ConnectorType, error) {
	ct := ConnectorType(s)
	if !ct.IsValid() {
		return "", ErrInvalidConnectorType
	}
	return ct, nil
}
