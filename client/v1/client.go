package v1

type KintaiClient struct {
	Transport  *Transport
	Attendance *AttendanceEndpoint
}

// NewKintaiClient initializes the API client
func NewKintaiClient(baseURL string, token string) *KintaiClient {
	t := NewTransport(baseURL, token)
	return &KintaiClient{
		Transport:  t,
		Attendance: &AttendanceEndpoint{transport: t},
	}
}
