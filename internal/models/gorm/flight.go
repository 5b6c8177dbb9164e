package gorm

// Flight is the GORM model of the airlines base relation, used for
// migration and batch loading. Read paths go through sqlx entities.
type Flight struct {
	Index           int64    `gorm:"column:index;primaryKey;autoIncrement:false"`
	Airline         string   `gorm:"column:airline;index"`
	Flight          string   `gorm:"column:flight"`
	SourceCity      string   `gorm:"column:source_city;index:idx_route"`
	DepartureTime   string   `gorm:"column:departure_time"`
	Stops           string   `gorm:"column:stops"`
	ArrivalTime     string   `gorm:"column:arrival_time"`
	DestinationCity string   `gorm:"column:destination_city;index:idx_route"`
	Class           string   `gorm:"column:class"`
	Duration        *float64 `gorm:"column:duration"`
	DaysLeft        int64    `gorm:"column:days_left"`
	Price           *float64 `gorm:"column:price"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "airlines"
}
