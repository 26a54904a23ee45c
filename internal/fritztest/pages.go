package fritztest

// ScriptPage is a status page in the embedded-script format. us_hec is
// missing and a few values are "-" on purpose.
const ScriptPage = `<!DOCTYPE html>
<html><head><script type="text/javascript">
var g_adsl = {
  ["sar:status/dsl_carrier_state"] = "5",
  ["sar:status/dsl_mode"] = "3",
  ["sar:status/exp_ds_olr_Bitswap"] = "1",
  ["sar:status/exp_us_olr_Bitswap"] = "0",
  ["sar:status/exp_ds_olr_SeamlessRA"] = "1",
  ["sar:status/exp_us_olr_SeamlessRA"] = "0",
  ["sar:status/ds_interleaved"] = "1",
  ["sar:status/us_interleaved"] = "1",
  ["sar:status/dsl_ds_rate"] = "16000",
  ["sar:status/dsl_us_rate"] = "1024",
  ["sar:status/ds_attainable"] = "17484",
  ["sar:status/us_attainable"] = "1148",
  ["sar:status/dslam_ds_max"] = "16384",
  ["sar:status/dslam_us_max"] = "1024",
  ["sar:status/dslam_ds_min"] = "32",
  ["sar:status/dslam_us_min"] = "32",
  ["sar:status/ds_delay"] = "16",
  ["sar:status/us_delay"] = "8",
  ["sar:status/ds_inp"] = "2",
  ["sar:status/us_inp"] = "0",
  ["sar:status/ds_margin"] = "9.5",
  ["sar:status/us_margin"] = "12",
  ["sar:status/ds_attenuation"] = "22.5",
  ["sar:status/us_attenuation"] = "12.1",
  ["sar:status/ds_fec_minute"] = "3.5",
  ["sar:status/us_fec_minute"] = "0",
  ["sar:status/ds_crc_minute"] = "0.02",
  ["sar:status/us_crc_minute"] = "-",
  ["sar:status/ds_fec"] = "123456",
  ["sar:status/us_fec"] = "42",
  ["sar:status/ds_crc"] = "321",
  ["sar:status/us_crc"] = "-",
  ["sar:status/ds_es"] = "17",
  ["sar:status/us_es"] = "3",
  ["sar:status/ds_ses"] = "1",
  ["sar:status/us_ses"] = "0",
  ["sar:status/ds_los"] = "0",
  ["sar:status/us_los"] = "0",
  ["sar:status/ds_ncd"] = "2",
  ["sar:status/us_ncd"] = "-",
  ["sar:status/ds_hec"] = "5"
};
var g_page = { title = "{DSL}" };
</script></head><body><div id="page"></div></body></html>
`

// XMLPage is a status page in the XML attribute format.
const XMLPage = `<?xml version="1.0" encoding="utf-8"?>
<DSL>
  <STATUS carrier="5" mode="3"/>
  <DATARATE rx="16000" tx="1024"/>
  <ATTAINABLE rx="17484" tx="1148"/>
  <DSLAM_MAX rx="16384" tx="1024"/>
  <DSLAM_MIN rx="32" tx="32"/>
  <LATENCY rx="16" tx="8"/>
  <INP rx="2" tx="0"/>
  <SNR rx="9.5" tx="12"/>
  <ATTENUATION rx="22.5" tx="12.1"/>
  <STATISTIC>
    <FEC cpe="123456" coe="42"/>
    <CRC cpe="321" coe="-"/>
    <ES cpe="12" coe="7"/>
    <SES cpe="1" coe="0"/>
    <LOS cpe="0" coe="0"/>
    <FEC_RATE cpe="0.25" coe="0"/>
    <CRC_RATE cpe="0.5" coe="-"/>
  </STATISTIC>
</DSL>
`
