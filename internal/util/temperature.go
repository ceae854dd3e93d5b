package util

// offset between the celsius and kelvin scale as used by the EC (integer kelvin)
const kelvinOffset = 273

// CelsiusToMilliKelvin converts whole degree celsius to milli-kelvin
func CelsiusToMilliKelvin(celsius int) int {
	return (celsius + kelvinOffset) * 1000
}

// MilliCelsiusToMilliKelvin converts milli-degree celsius to milli-kelvin
func MilliCelsiusToMilliKelvin(milliCelsius int) int {
	return milliCelsius + kelvinOffset*1000
}

// MilliKelvinToMilliCelsius converts milli-kelvin to milli-degree celsius
func MilliKelvinToMilliCelsius(milliKelvin int) int {
	return milliKelvin - kelvinOffset*1000
}

// MilliKelvinToCelsius converts milli-kelvin to degree celsius for display purposes
func MilliKelvinToCelsius(milliKelvin int) float64 {
	return float64(MilliKelvinToMilliCelsius(milliKelvin)) / 1000
}
