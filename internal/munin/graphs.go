package munin

// Category groups every graph under one Munin category.
const Category = "FritzBox"

// Munin data source types.
const (
	TypeGauge  = "GAUGE"
	TypeDerive = "DERIVE"
)

// Field is one data series of a graph. Source names the record field it is
// read from.
type Field struct {
	Name   string
	Label  string
	Source string
	Type   string
	Info   string
}

// Graph is one multigraph section. Name is completed with the host when
// rendered.
type Graph struct {
	Name   string
	Title  string
	VLabel string
	Info   string
	Args   string
	Fields []Field
}

func gauge(name, label, source, info string) Field {
	return Field{Name: name, Label: label, Source: source, Type: TypeGauge, Info: info}
}

func derive(name, label, source, info string) Field {
	return Field{Name: name, Label: label, Source: source, Type: TypeDerive, Info: info}
}

func lineRates(dir, rxtx string) Graph {
	return Graph{
		Name:   "linerates_" + dir,
		Title:  direction(dir) + " Line Rates",
		VLabel: "kbit/s",
		Info:   "Line rates of the DSL connection (" + rxtx + ", kbit/s)",
		Args:   "--lower-limit 0",
		Fields: []Field{
			gauge("rate", "line rate", "lineRate"+rxtx, "Current line rate"),
			gauge("attainable", "attainable", "attainableRate"+rxtx, "Attainable line rate"),
			gauge("dslam_max", "dslam max", "dslamMaxRate"+rxtx, "DSLAM configured maximum rate"),
			gauge("dslam_min", "dslam min", "dslamMinRate"+rxtx, "DSLAM configured minimum rate"),
		},
	}
}

func analog(dir, rxtx string) Graph {
	return Graph{
		Name:   "analog_" + dir,
		Title:  direction(dir) + " Line Quality",
		VLabel: "dB",
		Info:   "Analog line parameters (" + rxtx + ")",
		Fields: []Field{
			gauge("snr", "SNR margin", "signalNoiseRatio"+rxtx, "Signal to noise ratio margin (dB)"),
			gauge("attenuation", "attenuation", "attenuation"+rxtx, "Line attenuation (dB)"),
			gauge("latency", "latency", "latency"+rxtx, "Interleave delay (ms)"),
			gauge("inp", "INP", "impulseNoiseProtection"+rxtx, "Impulse noise protection (symbols)"),
		},
	}
}

func errorCounts(dir, side string) Graph {
	return Graph{
		Name:   "errors_" + dir,
		Title:  direction(dir) + " Errors",
		VLabel: "errors per ${graph_period}",
		Info:   "Error counters of the DSL connection, counted at the " + sideName(side),
		Args:   "--lower-limit 0",
		Fields: []Field{
			derive("fec", "FEC", "forwardErrorCorrections"+side, "Forward error corrections"),
			derive("crc", "CRC", "crcErrors"+side, "CRC errors"),
			derive("es", "ES", "errorSeconds"+side, "Errored seconds"),
			derive("ses", "SES", "severelyErroredSeconds"+side, "Severely errored seconds"),
			derive("los", "LOS", "lossOfSignal"+side, "Loss of signal"),
			derive("ncd", "NCD", "noCellDelineation"+side, "No cell delineation"),
			derive("hec", "HEC", "headerErrorControl"+side, "Header error control errors"),
		},
	}
}

func errorRates(dir, side string) Graph {
	return Graph{
		Name:   "errorrates_" + dir,
		Title:  direction(dir) + " Error Rates",
		VLabel: "errors/min",
		Info:   "Error rates reported by the device, counted at the " + sideName(side),
		Args:   "--lower-limit 0",
		Fields: []Field{
			gauge("fec", "FEC", "forwardErrorCorrectionsPerMin"+side, "Forward error corrections per minute"),
			gauge("crc", "CRC", "crcErrorsPerMin"+side, "CRC errors per minute"),
		},
	}
}

func direction(dir string) string {
	if dir == "down" {
		return "Downstream"
	}
	return "Upstream"
}

func sideName(side string) string {
	if side == "Cpe" {
		return "modem (CPE)"
	}
	return "exchange (COE)"
}

// Graphs returns the plugin's graphs in output order. Downstream errors are
// counted at the modem, upstream errors at the exchange.
func Graphs() []Graph {
	return []Graph{
		lineRates("down", "Rx"),
		lineRates("up", "Tx"),
		analog("down", "Rx"),
		analog("up", "Tx"),
		errorCounts("down", "Cpe"),
		errorCounts("up", "Coe"),
		errorRates("down", "Cpe"),
		errorRates("up", "Coe"),
	}
}
