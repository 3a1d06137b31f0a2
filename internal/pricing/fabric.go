package pricing

// Fabric usage tables: meters of fabric required per (length bucket,
// width bucket) cell. Rows follow LengthBuckets (standard) or
// SpecialLengthBuckets (special); columns follow WidthBuckets.
// Hand-authored business data, reproduced exactly. The repeated values
// across neighbouring width buckets in the coarse regions are intentional.

// FabricUsage returns the meters of fabric required for the given width
// and height buckets under the given pricing type. Indexes outside the
// table report ok=false.
func FabricUsage(pricingType PricingType, widthBucket, heightBucket int) (float64, bool) {
	if widthBucket < 0 || widthBucket >= len(WidthBuckets) {
		return 0, false
	}
	switch pricingType {
	case PricingTypeSpecial:
		if heightBucket < 0 || heightBucket >= len(SpecialLengthBuckets) {
			return 0, false
		}
		return fabricUsageSpecial[heightBucket][widthBucket], true
	default:
		if heightBucket < 0 || heightBucket >= len(LengthBuckets) {
			return 0, false
		}
		return fabricUsageStandard[heightBucket][widthBucket], true
	}
}

var fabricUsageStandard = [45][29]float64{
	{1.34, 4.04, 4.04, 4.04, 4.04, 5.38, 5.38, 5.38, 6.72, 6.72, 6.72, 6.72, 8.07, 8.07, 8.07, 9.41, 9.41, 9.41, 9.41, 10.76, 10.76, 10.76, 12.11, 12.11, 12.11, 13.45, 14.79, 16.14, 16.14},
	{1.45, 4.33, 4.33, 4.33, 4.33, 5.78, 5.78, 5.78, 7.23, 7.23, 7.23, 7.23, 8.67, 8.67, 8.67, 10.12, 10.12, 10.12, 10.12, 11.56, 11.56, 11.56, 13.01, 13.01, 13.01, 14.45, 15.90, 17.34, 17.34},
	{1.55, 4.64, 4.64, 4.64, 4.64, 6.18, 6.18, 6.18, 7.73, 7.73, 7.73, 7.73, 9.27, 9.27, 9.27, 10.82, 10.82, 10.82, 10.82, 12.36, 12.36, 12.36, 13.91, 13.91, 13.91, 15.45, 17.00, 18.54, 18.54},
	{1.65, 4.94, 4.94, 4.94, 4.94, 6.58, 6.58, 6.58, 8.23, 8.23, 8.23, 8.23, 9.87, 9.87, 9.87, 11.52, 11.52, 11.52, 11.52, 13.16, 13.16, 13.16, 14.81, 14.81, 14.81, 16.45, 18.10, 19.74, 19.74},
	{1.74, 5.23, 5.23, 5.23, 5.23, 6.98, 6.98, 6.98, 8.72, 8.72, 8.72, 8.72, 10.47, 10.47, 10.47, 12.21, 12.21, 12.21, 12.21, 13.96, 13.96, 13.96, 15.70, 15.70, 15.70, 17.45, 19.20, 20.94, 20.94},
	{1.84, 5.54, 5.54, 5.54, 5.54, 7.38, 7.38, 7.38, 9.22, 9.22, 9.22, 9.22, 11.07, 11.07, 11.07, 12.91, 12.91, 12.91, 12.91, 14.76, 14.76, 14.76, 16.61, 16.61, 16.61, 18.45, 20.29, 22.14, 22.14},
	{1.95, 5.83, 5.83, 5.83, 5.83, 7.78, 7.78, 7.78, 9.72, 9.72, 9.72, 9.72, 11.67, 11.67, 11.67, 13.62, 13.62, 13.62, 13.62, 15.56, 15.56, 15.56, 17.50, 17.50, 17.50, 19.45, 21.39, 23.34, 23.34},
	{2.04, 6.13, 6.13, 6.13, 6.13, 8.18, 8.18, 8.18, 10.22, 10.22, 10.22, 10.22, 12.27, 12.27, 12.27, 14.31, 14.31, 14.31, 14.31, 16.36, 16.36, 16.36, 18.41, 18.41, 18.41, 20.45, 22.49, 24.54, 24.54},
	{2.15, 6.44, 6.44, 6.44, 6.44, 8.58, 8.58, 8.58, 10.72, 10.72, 10.72, 10.72, 12.87, 12.87, 12.87, 15.02, 15.02, 15.02, 15.02, 17.16, 17.16, 17.16, 19.30, 19.30, 19.30, 21.45, 23.59, 25.74, 25.74},
	{2.24, 6.73, 6.73, 6.73, 6.73, 8.98, 8.98, 8.98, 11.22, 11.22, 11.22, 11.22, 13.47, 13.47, 13.47, 15.71, 15.71, 15.71, 15.71, 17.96, 17.96, 17.96, 20.20, 20.20, 20.20, 22.45, 24.69, 26.94, 26.94},
	{2.34, 7.03, 7.03, 7.03, 7.03, 9.38, 9.38, 9.38, 11.72, 11.72, 11.72, 11.72, 14.07, 14.07, 14.07, 16.41, 16.41, 16.41, 16.41, 18.76, 18.76, 18.76, 21.10, 21.10, 21.10, 23.45, 25.79, 28.14, 28.14},
	{2.44, 7.33, 7.33, 7.33, 7.33, 9.78, 9.78, 9.78, 12.22, 12.22, 12.22, 12.22, 14.67, 14.67, 14.67, 17.11, 17.11, 17.11, 17.11, 19.56, 19.56, 19.56, 22.00, 22.00, 22.00, 24.45, 26.89, 29.34, 29.34},
	{2.54, 7.63, 7.63, 7.63, 7.63, 10.18, 10.18, 10.18, 12.72, 12.72, 12.72, 12.72, 15.27, 15.27, 15.27, 17.81, 17.81, 17.81, 17.81, 20.36, 20.36, 20.36, 22.91, 22.91, 22.91, 25.45, 27.99, 30.54, 30.54},
	{2.64, 7.93, 7.93, 7.93, 7.93, 10.58, 10.58, 10.58, 13.22, 13.22, 13.22, 13.22, 15.87, 15.87, 15.87, 18.51, 18.51, 18.51, 18.51, 21.16, 21.16, 21.16, 23.80, 23.80, 23.80, 26.45, 29.09, 31.74, 31.74},
	{2.74, 8.23, 8.23, 8.23, 8.23, 10.98, 10.98, 10.98, 13.72, 13.72, 13.72, 13.72, 16.47, 16.47, 16.47, 19.21, 19.21, 19.21, 19.21, 21.96, 21.96, 21.96, 24.70, 24.70, 24.70, 27.45, 30.19, 32.94, 32.94},
	{2.84, 8.54, 8.54, 8.54, 8.54, 11.38, 11.38, 11.38, 14.22, 14.22, 14.22, 14.22, 17.07, 17.07, 17.07, 19.91, 19.91, 19.91, 19.91, 22.76, 22.76, 22.76, 25.60, 25.60, 25.60, 28.45, 31.29, 34.14, 34.14},
	{2.94, 8.83, 8.83, 8.83, 8.83, 11.78, 11.78, 11.78, 14.72, 14.72, 14.72, 14.72, 17.67, 17.67, 17.67, 20.61, 20.61, 20.61, 20.61, 23.56, 23.56, 23.56, 26.50, 26.50, 26.50, 29.45, 32.39, 35.34, 35.34},
	{3.04, 9.13, 9.13, 9.13, 9.13, 12.18, 12.18, 12.18, 15.22, 15.22, 15.22, 15.22, 18.27, 18.27, 18.27, 21.31, 21.31, 21.31, 21.31, 24.36, 24.36, 24.36, 27.41, 27.41, 27.41, 30.45, 33.49, 36.54, 36.54},
	{3.14, 9.43, 9.43, 9.43, 9.43, 12.58, 12.58, 12.58, 15.72, 15.72, 15.72, 15.72, 18.87, 18.87, 18.87, 22.01, 22.01, 22.01, 22.01, 25.16, 25.16, 25.16, 28.30, 28.30, 28.30, 31.45, 34.59, 37.74, 37.74},
	{3.24, 9.73, 9.73, 9.73, 9.73, 12.98, 12.98, 12.98, 16.22, 16.22, 16.22, 16.22, 19.47, 19.47, 19.47, 22.71, 22.71, 22.71, 22.71, 25.96, 25.96, 25.96, 29.20, 29.20, 29.20, 32.45, 35.69, 38.94, 38.94},
	{3.34, 10.04, 10.04, 10.04, 10.04, 13.38, 13.38, 13.38, 16.72, 16.72, 16.72, 16.72, 20.07, 20.07, 20.07, 23.41, 23.41, 23.41, 23.41, 26.76, 26.76, 26.76, 30.10, 30.10, 30.10, 33.45, 36.79, 40.14, 40.14},
	{3.44, 10.33, 10.33, 10.33, 10.33, 13.78, 13.78, 13.78, 17.22, 17.22, 17.22, 17.22, 20.67, 20.67, 20.67, 24.11, 24.11, 24.11, 24.11, 27.56, 27.56, 27.56, 31.00, 31.00, 31.00, 34.45, 37.89, 41.34, 41.34},
	{3.54, 10.63, 10.63, 10.63, 10.63, 14.18, 14.18, 14.18, 17.73, 17.73, 17.73, 17.73, 21.27, 21.27, 21.27, 24.81, 24.81, 24.81, 24.81, 28.36, 28.36, 28.36, 31.91, 31.91, 31.91, 35.45, 38.99, 42.54, 42.54},
	{3.64, 10.93, 10.93, 10.93, 10.93, 14.58, 14.58, 14.58, 18.22, 18.22, 18.22, 18.22, 21.87, 21.87, 21.87, 25.51, 25.51, 25.51, 25.51, 29.16, 29.16, 29.16, 32.80, 32.80, 32.80, 36.45, 40.09, 43.74, 43.74},
	{3.74, 11.23, 11.23, 11.23, 11.23, 14.98, 14.98, 14.98, 18.72, 18.72, 18.72, 18.72, 22.47, 22.47, 22.47, 26.21, 26.21, 26.21, 26.21, 29.96, 29.96, 29.96, 33.70, 33.70, 33.70, 37.45, 41.19, 44.94, 44.94},
	{3.84, 11.54, 11.54, 11.54, 11.54, 15.38, 15.38, 15.38, 19.22, 19.22, 19.22, 19.22, 23.07, 23.07, 23.07, 26.91, 26.91, 26.91, 26.91, 30.76, 30.76, 30.76, 34.60, 34.60, 34.60, 38.45, 42.29, 46.14, 46.14},
	{3.94, 11.83, 11.83, 11.83, 11.83, 15.78, 15.78, 15.78, 19.72, 19.72, 19.72, 19.72, 23.67, 23.67, 23.67, 27.61, 27.61, 27.61, 27.61, 31.56, 31.56, 31.56, 35.50, 35.50, 35.50, 39.45, 43.39, 47.34, 47.34},
	{4.04, 12.13, 12.13, 12.13, 12.13, 16.18, 16.18, 16.18, 20.23, 20.23, 20.23, 20.23, 24.27, 24.27, 24.27, 28.31, 28.31, 28.31, 28.31, 32.36, 32.36, 32.36, 36.41, 36.41, 36.41, 40.45, 44.49, 48.54, 48.54},
	{4.14, 12.43, 12.43, 12.43, 12.43, 16.58, 16.58, 16.58, 20.72, 20.72, 20.72, 20.72, 24.87, 24.87, 24.87, 29.01, 29.01, 29.01, 29.01, 33.16, 33.16, 33.16, 37.30, 37.30, 37.30, 41.45, 45.59, 49.74, 49.74},
	{4.25, 12.73, 12.73, 12.73, 12.73, 16.98, 16.98, 16.98, 21.23, 21.23, 21.23, 21.23, 25.47, 25.47, 25.47, 29.71, 29.71, 29.71, 29.71, 33.96, 33.96, 33.96, 38.20, 38.20, 38.20, 42.45, 46.70, 50.94, 50.94},
	{4.34, 13.04, 13.04, 13.04, 13.04, 17.38, 17.38, 17.38, 21.72, 21.72, 21.72, 21.72, 26.07, 26.07, 26.07, 30.41, 30.41, 30.41, 30.41, 34.76, 34.76, 34.76, 39.10, 39.10, 39.10, 43.45, 47.79, 52.14, 52.14},
	{4.44, 13.33, 13.33, 13.33, 13.33, 17.78, 17.78, 17.78, 22.22, 22.22, 22.22, 22.22, 26.67, 26.67, 26.67, 31.11, 31.11, 31.11, 31.11, 35.56, 35.56, 35.56, 40.00, 40.00, 40.00, 44.45, 48.89, 53.34, 53.34},
	{4.54, 13.63, 13.63, 13.63, 13.63, 18.18, 18.18, 18.18, 22.73, 22.73, 22.73, 22.73, 27.27, 27.27, 27.27, 31.81, 31.81, 31.81, 31.81, 36.36, 36.36, 36.36, 40.91, 40.91, 40.91, 45.45, 49.99, 54.54, 54.54},
	{4.64, 13.93, 13.93, 13.93, 13.93, 18.58, 18.58, 18.58, 23.22, 23.22, 23.22, 23.22, 27.87, 27.87, 27.87, 32.52, 32.52, 32.52, 32.52, 37.16, 37.16, 37.16, 41.80, 41.80, 41.80, 46.45, 51.09, 55.74, 55.74},
	{4.75, 14.23, 14.23, 14.23, 14.23, 18.98, 18.98, 18.98, 23.73, 23.73, 23.73, 23.73, 28.47, 28.47, 28.47, 33.22, 33.22, 33.22, 33.22, 37.96, 37.96, 37.96, 42.70, 42.70, 42.70, 47.45, 52.20, 56.94, 56.94},
	{5.04, 15.13, 15.13, 15.13, 15.13, 20.18, 20.18, 20.18, 25.23, 25.23, 25.23, 25.23, 30.27, 30.27, 30.27, 35.31, 35.31, 35.31, 35.31, 40.36, 40.36, 40.36, 45.41, 45.41, 45.41, 50.45, 55.49, 60.54, 60.54},
	{5.54, 16.63, 16.63, 16.63, 16.63, 22.18, 22.18, 22.18, 27.73, 27.73, 27.73, 27.73, 33.27, 33.27, 33.27, 38.81, 38.81, 38.81, 38.81, 44.36, 44.36, 44.36, 49.91, 49.91, 49.91, 55.45, 60.99, 66.54, 66.54},
	{6.04, 18.13, 18.13, 18.13, 18.13, 24.18, 24.18, 24.18, 30.23, 30.23, 30.23, 30.23, 36.27, 36.27, 36.27, 42.31, 42.31, 42.31, 42.31, 48.36, 48.36, 48.36, 54.41, 54.41, 54.41, 60.45, 66.50, 72.54, 72.54},
	{6.54, 19.63, 19.63, 19.63, 19.63, 26.18, 26.18, 26.18, 32.73, 32.73, 32.73, 32.73, 39.27, 39.27, 39.27, 45.81, 45.81, 45.81, 45.81, 52.36, 52.36, 52.36, 58.91, 58.91, 58.91, 65.45, 72.00, 78.54, 78.54},
	{7.04, 21.13, 21.13, 21.13, 21.13, 28.18, 28.18, 28.18, 35.23, 35.23, 35.23, 35.23, 42.27, 42.27, 42.27, 49.31, 49.31, 49.31, 49.31, 56.36, 56.36, 56.36, 63.41, 63.41, 63.41, 70.45, 77.50, 84.54, 84.54},
	{7.54, 22.63, 22.63, 22.63, 22.63, 30.18, 30.18, 30.18, 37.73, 37.73, 37.73, 37.73, 45.27, 45.27, 45.27, 52.81, 52.81, 52.81, 52.81, 60.36, 60.36, 60.36, 67.91, 67.91, 67.91, 75.45, 83.00, 90.54, 90.54},
	{8.04, 24.13, 24.13, 24.13, 24.13, 32.18, 32.18, 32.18, 40.23, 40.23, 40.23, 40.23, 48.27, 48.27, 48.27, 56.31, 56.31, 56.31, 56.31, 64.36, 64.36, 64.36, 72.41, 72.41, 72.41, 80.45, 88.50, 96.54, 96.54},
	{8.55, 25.64, 25.64, 25.64, 25.64, 34.18, 34.18, 34.18, 42.73, 42.73, 42.73, 42.73, 51.27, 51.27, 51.27, 59.82, 59.82, 59.82, 59.82, 68.36, 68.36, 68.36, 76.91, 76.91, 76.91, 85.45, 94.00, 102.54, 102.54},
	{9.05, 27.14, 27.14, 27.14, 27.14, 36.18, 36.18, 36.18, 45.23, 45.23, 45.23, 45.23, 54.27, 54.27, 54.27, 63.32, 63.32, 63.32, 63.32, 72.36, 72.36, 72.36, 81.41, 81.41, 81.41, 90.45, 99.50, 108.54, 108.54},
	{9.55, 28.64, 28.64, 28.64, 28.64, 38.18, 38.18, 38.18, 47.73, 47.73, 47.73, 47.73, 57.27, 57.27, 57.27, 66.82, 66.82, 66.82, 66.82, 76.36, 76.36, 76.36, 85.91, 85.91, 85.91, 95.45, 105.00, 114.54, 114.54},
}

var fabricUsageSpecial = [6][29]float64{
	{0.79, 2.38, 2.38, 2.38, 2.38, 3.18, 3.18, 3.18, 3.97, 3.97, 3.97, 3.97, 4.77, 4.77, 4.77, 5.56, 5.56, 5.56, 5.56, 6.36, 6.36, 6.36, 7.15, 7.15, 7.15, 7.95, 8.74, 9.54, 9.54},
	{1.49, 4.48, 4.48, 4.48, 4.48, 5.98, 5.98, 5.98, 7.47, 7.47, 7.47, 7.47, 8.97, 8.97, 8.97, 10.46, 10.46, 10.46, 10.46, 11.96, 11.96, 11.96, 13.45, 13.45, 13.45, 14.95, 16.45, 17.94, 17.94},
	{1.90, 5.69, 5.69, 5.69, 5.69, 7.58, 7.58, 7.58, 9.47, 9.47, 9.47, 9.47, 11.37, 11.37, 11.37, 13.27, 13.27, 13.27, 13.27, 15.16, 15.16, 15.16, 17.05, 17.05, 17.05, 18.95, 20.84, 22.74, 22.74},
	{2.24, 6.73, 6.73, 6.73, 6.73, 8.98, 8.98, 8.98, 11.22, 11.22, 11.22, 11.22, 13.47, 13.47, 13.47, 15.71, 15.71, 15.71, 15.71, 17.96, 17.96, 17.96, 20.20, 20.20, 20.20, 22.45, 24.69, 26.94, 26.94},
	{2.54, 7.63, 7.63, 7.63, 7.63, 10.18, 10.18, 10.18, 12.72, 12.72, 12.72, 12.72, 15.27, 15.27, 15.27, 17.81, 17.81, 17.81, 17.81, 20.36, 20.36, 20.36, 22.91, 22.91, 22.91, 25.45, 27.99, 30.54, 30.54},
	{2.79, 8.38, 8.38, 8.38, 8.38, 11.18, 11.18, 11.18, 13.97, 13.97, 13.97, 13.97, 16.77, 16.77, 16.77, 19.56, 19.56, 19.56, 19.56, 22.36, 22.36, 22.36, 25.16, 25.16, 25.16, 27.95, 30.74, 33.54, 33.54},
}
