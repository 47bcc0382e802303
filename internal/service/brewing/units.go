package brewing

const (
	gallonsPerLiter = 0.264172
	lbsPerKg        = 2.20462
)

// LitersToGallons converts a volume in liters to US gallons.
func LitersToGallons(liters float64) float64 {
	return liters * gallonsPerLiter
}

// KgToLbs converts a mass in kilograms to pounds.
func KgToLbs(kg float64) float64 {
	return kg * lbsPerKg
}
