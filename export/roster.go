package export

// DefaultRoster is the built-in ~44-variable projection used when a
// caller supplies neither an explicit Projection nor IncludeAll. It
// covers time/position, vehicle dynamics, driver inputs, accelerations,
// orientation, per-tire temperatures/wear/pressure, fuel, and track
// temperatures — the categories spec.md calls out as ML-relevant.
// Names that do not resolve against a given file's dictionary are
// silently dropped.
var DefaultRoster = Projection{
	"SessionTime",
	"SessionNum",
	"Lap",
	"LapCompleted",
	"LapDist",
	"LapDistPct",
	"Speed",
	"RPM",
	"Gear",
	"Throttle",
	"Brake",
	"Clutch",
	"SteeringWheelAngle",
	"Lat",
	"Lon",
	"Alt",
	"VelocityX",
	"VelocityY",
	"VelocityZ",
	"YawRate",
	"Pitch",
	"Roll",
	"Yaw",
	"LongAccel",
	"LatAccel",
	"VertAccel",
	"FuelLevel",
	"FuelLevelPct",
	"WaterTemp",
	"OilTemp",
	"OilPress",
	"TrackTempCrew",
	"AirTemp",
	"LFtempCM",
	"RFtempCM",
	"LRtempCM",
	"RRtempCM",
	"LFwearM",
	"RFwearM",
	"LRwearM",
	"RRwearM",
	"LFpressure",
	"RFpressure",
	"LRpressure",
	"RRpressure",
}
