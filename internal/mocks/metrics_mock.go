package mocks

// MockMetrics counts the recorder calls the services make / Compte les appels
// d'enregistrement faits par les services
type MockMetrics struct {
	LoginSuccessCalls   int
	LoginFailureCalls   int
	RegistrationCalls   int
	PaymentCreatedCalls int
	ViewTrackedCalls    int
	QueuePublishCalls   int
	LastPaymentMethod   string
	LastViewKind        string
	LastPublishOK       bool
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) RecordLoginSuccess() {
	m.LoginSuccessCalls++
}

func (m *MockMetrics) RecordLoginFailure() {
	m.LoginFailureCalls++
}

func (m *MockMetrics) RecordRegistration() {
	m.RegistrationCalls++
}

func (m *MockMetrics) RecordPaymentCreated(method string) {
	m.PaymentCreatedCalls++
	m.LastPaymentMethod = method
}

func (m *MockMetrics) RecordViewTracked(kind string) {
	m.ViewTrackedCalls++
	m.LastViewKind = kind
}

func (m *MockMetrics) RecordQueuePublish(ok bool) {
	m.QueuePublishCalls++
	m.LastPublishOK = ok
}
