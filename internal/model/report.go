package model

// EmployeeDayStat 单个员工在某日的签到聚合（日报明细查询的一行）
type EmployeeDayStat struct {
	EmployeeID     int64
	EmployeeName   string
	EmployeeEmail  string
	Checkins       int64
	ClientsVisited int64
	TotalHours     float64  // 全精度，未舍入
	AvgDistance    *float64 // 所有 distance_from_client 均为空时为 nil
}
