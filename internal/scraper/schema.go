package scraper

// FieldKind says which record map a field lands in.
type FieldKind int

const (
	Flag FieldKind = iota
	Gauge
	Counter
)

func (k FieldKind) String() string {
	switch k {
	case Flag:
		return "flag"
	case Gauge:
		return "gauge"
	case Counter:
		return "counter"
	default:
		return "unknown"
	}
}

// XMLSource locates a value in the XML page format.
type XMLSource struct {
	// Path is matched against the end of the element path, e.g.
	// "STATISTIC/ES" matches /DSL/STATISTIC/ES.
	Path string
	Attr string
	// PerSecond marks a per-second rate that is reported per minute.
	PerSecond bool
}

// Exposed reports whether the XML format carries the field.
func (x XMLSource) Exposed() bool { return x.Path != "" && x.Attr != "" }

// Field is one entry of the schema.
type Field struct {
	Name string
	Kind FieldKind
	// ScriptKey is the variable name in the embedded-script format.
	// Empty means the format does not expose the field.
	ScriptKey string
	// XML is the source in the XML format; the zero value means not exposed.
	XML XMLSource
}

// Schema is an immutable, ordered list of fields.
type Schema struct {
	fields []Field
}

// NewSchema copies fields into a Schema.
func NewSchema(fields []Field) Schema {
	return Schema{fields: append([]Field(nil), fields...)}
}

// Fields returns a copy of the field list.
func (s Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Len returns the number of fields.
func (s Schema) Len() int { return len(s.fields) }

// Field looks a field up by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

const sar = "sar:status/"

func xmlAttr(path, attr string) XMLSource {
	return XMLSource{Path: path, Attr: attr}
}

func xmlRate(path, attr string) XMLSource {
	return XMLSource{Path: path, Attr: attr, PerSecond: true}
}

// dslFields is the DSL line schema. Rx/Tx are downstream/upstream; Cpe/Coe
// are errors counted at the modem and at the exchange.
var dslFields = []Field{
	{Name: "carrierState", Kind: Flag, ScriptKey: sar + "dsl_carrier_state", XML: xmlAttr("STATUS", "carrier")},
	{Name: "dslMode", Kind: Flag, ScriptKey: sar + "dsl_mode", XML: xmlAttr("STATUS", "mode")},
	{Name: "bitswapRx", Kind: Flag, ScriptKey: sar + "exp_ds_olr_Bitswap"},
	{Name: "bitswapTx", Kind: Flag, ScriptKey: sar + "exp_us_olr_Bitswap"},
	{Name: "seamlessRateAdaptationRx", Kind: Flag, ScriptKey: sar + "exp_ds_olr_SeamlessRA"},
	{Name: "seamlessRateAdaptationTx", Kind: Flag, ScriptKey: sar + "exp_us_olr_SeamlessRA"},
	{Name: "interleavedRx", Kind: Flag, ScriptKey: sar + "ds_interleaved"},
	{Name: "interleavedTx", Kind: Flag, ScriptKey: sar + "us_interleaved"},

	{Name: "lineRateRx", Kind: Gauge, ScriptKey: sar + "dsl_ds_rate", XML: xmlAttr("DATARATE", "rx")},
	{Name: "lineRateTx", Kind: Gauge, ScriptKey: sar + "dsl_us_rate", XML: xmlAttr("DATARATE", "tx")},
	{Name: "attainableRateRx", Kind: Gauge, ScriptKey: sar + "ds_attainable", XML: xmlAttr("ATTAINABLE", "rx")},
	{Name: "attainableRateTx", Kind: Gauge, ScriptKey: sar + "us_attainable", XML: xmlAttr("ATTAINABLE", "tx")},
	{Name: "dslamMaxRateRx", Kind: Gauge, ScriptKey: sar + "dslam_ds_max", XML: xmlAttr("DSLAM_MAX", "rx")},
	{Name: "dslamMaxRateTx", Kind: Gauge, ScriptKey: sar + "dslam_us_max", XML: xmlAttr("DSLAM_MAX", "tx")},
	{Name: "dslamMinRateRx", Kind: Gauge, ScriptKey: sar + "dslam_ds_min", XML: xmlAttr("DSLAM_MIN", "rx")},
	{Name: "dslamMinRateTx", Kind: Gauge, ScriptKey: sar + "dslam_us_min", XML: xmlAttr("DSLAM_MIN", "tx")},
	{Name: "latencyRx", Kind: Gauge, ScriptKey: sar + "ds_delay", XML: xmlAttr("LATENCY", "rx")},
	{Name: "latencyTx", Kind: Gauge, ScriptKey: sar + "us_delay", XML: xmlAttr("LATENCY", "tx")},
	{Name: "impulseNoiseProtectionRx", Kind: Gauge, ScriptKey: sar + "ds_inp", XML: xmlAttr("INP", "rx")},
	{Name: "impulseNoiseProtectionTx", Kind: Gauge, ScriptKey: sar + "us_inp", XML: xmlAttr("INP", "tx")},
	{Name: "signalNoiseRatioRx", Kind: Gauge, ScriptKey: sar + "ds_margin", XML: xmlAttr("SNR", "rx")},
	{Name: "signalNoiseRatioTx", Kind: Gauge, ScriptKey: sar + "us_margin", XML: xmlAttr("SNR", "tx")},
	{Name: "attenuationRx", Kind: Gauge, ScriptKey: sar + "ds_attenuation", XML: xmlAttr("ATTENUATION", "rx")},
	{Name: "attenuationTx", Kind: Gauge, ScriptKey: sar + "us_attenuation", XML: xmlAttr("ATTENUATION", "tx")},
	{Name: "forwardErrorCorrectionsPerMinCpe", Kind: Gauge, ScriptKey: sar + "ds_fec_minute", XML: xmlRate("STATISTIC/FEC_RATE", "cpe")},
	{Name: "forwardErrorCorrectionsPerMinCoe", Kind: Gauge, ScriptKey: sar + "us_fec_minute", XML: xmlRate("STATISTIC/FEC_RATE", "coe")},
	{Name: "crcErrorsPerMinCpe", Kind: Gauge, ScriptKey: sar + "ds_crc_minute", XML: xmlRate("STATISTIC/CRC_RATE", "cpe")},
	{Name: "crcErrorsPerMinCoe", Kind: Gauge, ScriptKey: sar + "us_crc_minute", XML: xmlRate("STATISTIC/CRC_RATE", "coe")},

	{Name: "forwardErrorCorrectionsCpe", Kind: Counter, ScriptKey: sar + "ds_fec", XML: xmlAttr("STATISTIC/FEC", "cpe")},
	{Name: "forwardErrorCorrectionsCoe", Kind: Counter, ScriptKey: sar + "us_fec", XML: xmlAttr("STATISTIC/FEC", "coe")},
	{Name: "crcErrorsCpe", Kind: Counter, ScriptKey: sar + "ds_crc", XML: xmlAttr("STATISTIC/CRC", "cpe")},
	{Name: "crcErrorsCoe", Kind: Counter, ScriptKey: sar + "us_crc", XML: xmlAttr("STATISTIC/CRC", "coe")},
	{Name: "errorSecondsCpe", Kind: Counter, ScriptKey: sar + "ds_es", XML: xmlAttr("STATISTIC/ES", "cpe")},
	{Name: "errorSecondsCoe", Kind: Counter, ScriptKey: sar + "us_es", XML: xmlAttr("STATISTIC/ES", "coe")},
	{Name: "severelyErroredSecondsCpe", Kind: Counter, ScriptKey: sar + "ds_ses", XML: xmlAttr("STATISTIC/SES", "cpe")},
	{Name: "severelyErroredSecondsCoe", Kind: Counter, ScriptKey: sar + "us_ses", XML: xmlAttr("STATISTIC/SES", "coe")},
	{Name: "lossOfSignalCpe", Kind: Counter, ScriptKey: sar + "ds_los", XML: xmlAttr("STATISTIC/LOS", "cpe")},
	{Name: "lossOfSignalCoe", Kind: Counter, ScriptKey: sar + "us_los", XML: xmlAttr("STATISTIC/LOS", "coe")},
	{Name: "noCellDelineationCpe", Kind: Counter, ScriptKey: sar + "ds_ncd"},
	{Name: "noCellDelineationCoe", Kind: Counter, ScriptKey: sar + "us_ncd"},
	{Name: "headerErrorControlCpe", Kind: Counter, ScriptKey: sar + "ds_hec"},
	{Name: "headerErrorControlCoe", Kind: Counter, ScriptKey: sar + "us_hec"},
}

// DSLSchema returns the DSL line-quality schema.
func DSLSchema() Schema {
	return NewSchema(dslFields)
}
