package handler

// DomainMetricsRecorder はハンドラーが記録するドメインメトリクスのインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type DomainMetricsRecorder interface {
	RecordLogin(result string)
	RecordRegistration()
	RecordMealCreated()
	RecordMealDeleted()
	RecordHistoryCreated()
	RecordHistoryDeleted()
}

// nopRecorder はメトリクスを記録しないDomainMetricsRecorder。
type nopRecorder struct{}

func (nopRecorder) RecordLogin(string)    {}
func (nopRecorder) RecordRegistration()   {}
func (nopRecorder) RecordMealCreated()    {}
func (nopRecorder) RecordMealDeleted()    {}
func (nopRecorder) RecordHistoryCreated() {}
func (nopRecorder) RecordHistoryDeleted() {}

func recorderOrNop(r DomainMetricsRecorder) DomainMetricsRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
