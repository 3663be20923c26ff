// Package validation checks files handed to the command line tools before
// any parsing starts: hours exports must be readable .csv files, definitions
// workbooks readable .xlsx files, and output directories writable.
package validation
