/*
Copyright © 2018 the txblend authors.
This file is part of txblend.

txblend is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

txblend is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with txblend.  If not, see <http://www.gnu.org/licenses/>.
*/

package txblend

import "github.com/sirupsen/logrus"

// Version gives this version of txblend.
const Version = "0.5.0"

// Log receives informational output from the readers and writers: which
// file is being read and how many records were recovered from it. Replace
// it to redirect or silence that output.
var Log logrus.FieldLogger = logrus.StandardLogger()
