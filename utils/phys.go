package utils

// Physical constants (SI).
const (
	C    = 299792458.0           // vacuum speed of light [m/s]
	Mu0  = 1.25663706212e-6      // vacuum permeability [N/A^2]
	Eps0 = 1.0 / (Mu0 * C * C)   // vacuum permittivity [F/m]
	Qe   = 1.602176634e-19       // elementary charge [C]
	Me   = 9.1093837015e-31      // electron mass [kg]
)
