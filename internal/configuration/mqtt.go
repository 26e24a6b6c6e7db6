package configuration

type MqttConfig struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientId    string `json:"clientId"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	Topic       string `json:"topic"`
	SystemTopic string `json:"systemTopic"`
}
